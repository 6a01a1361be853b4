//go:build !windows

package oscore

import (
	"context"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

func ChownRecursive(ctx context.Context, path string, userName string, groupName string) error {
	uid, gid, err := LookupIDs(userName, groupName)
	if err != nil {
		return err
	}

	err = ChownR(ctx, path, uid, gid)
	if err != nil {
		return errors.Wrap(err, "failed to chown")
	}

	return nil
}

func LookupIDs(userName string, groupName string) (int, int, error) {
	u, err := user.Lookup(userName)
	if err != nil {
		return 0, 0, errors.WithMessage(err, "failed to lookup user")
	}

	g, err := user.LookupGroup(groupName)
	if err != nil {
		return 0, 0, errors.WithMessage(err, "failed to lookup group")
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, 0, errors.WithMessage(err, "failed to convert uid to int")
	}

	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return 0, 0, errors.WithMessage(err, "failed to convert gid to int")
	}

	return uid, gid, nil
}

// ChownR recursively changes the ownership of all files and directories under path.
func ChownR(ctx context.Context, path string, uid, gid int) error {
	return filepath.Walk(path, func(name string, info os.FileInfo, err error) error {
		// Check if context is cancelled
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			// Ignore invalid
			//nolint:nilerr
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			symlinkFile, err := os.Readlink(name)
			if err != nil {
				// Ignore invalid symlink
				//nolint:nilerr
				return nil
			}

			if _, err = os.Stat(symlinkFile); err != nil {
				// Ignore invalid symlink
				//nolint:nilerr
				return nil
			}
		}

		return os.Chown(name, uid, gid)
	})
}
