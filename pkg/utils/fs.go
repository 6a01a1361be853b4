package utils

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"github.com/pkg/errors"
)

func IsFileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func Copy(src string, dst string) error {
	return copy.Copy(src, dst)
}

// WriteFileAtomic writes contents to a temporary file in the target
// directory and renames it into place, so a half-written file is never
// visible at path. The requested mode is applied before the rename.
func WriteFileAtomic(path string, contents []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".gameportctl-*")
	if err != nil {
		return errors.WithMessage(err, "failed to create temp file")
	}
	tmpName := tmpFile.Name()

	removeTmp := func() {
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			log.Println(rmErr)
		}
	}

	if _, err = tmpFile.Write(contents); err != nil {
		_ = tmpFile.Close()
		removeTmp()

		return errors.WithMessage(err, "failed to write temp file")
	}

	if err = tmpFile.Chmod(perm); err != nil {
		_ = tmpFile.Close()
		removeTmp()

		return errors.WithMessage(err, "failed to chmod temp file")
	}

	if err = tmpFile.Close(); err != nil {
		removeTmp()

		return errors.WithMessage(err, "failed to close temp file")
	}

	if err = os.Rename(tmpName, path); err != nil {
		removeTmp()

		return errors.WithMessage(err, "failed to rename temp file")
	}

	return nil
}
