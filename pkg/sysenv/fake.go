package sysenv

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	osinfo "github.com/gameport/gameportctl/pkg/os_info"
	"github.com/pkg/errors"
)

// FakeFile is a file entry in a Fake environment.
type FakeFile struct {
	Contents []byte
	Mode     os.FileMode
	Owner    string
	Group    string
	IsDir    bool
	Link     string
}

// Fake is an in-memory Environment. Every mutation is recorded so tests
// can assert on what a provisioning run did to the host.
type Fake struct {
	FactsInfo osinfo.Info
	FactsErr  error

	Files map[string]*FakeFile
	Users map[string]bool

	IndexUpdated      bool
	InstalledPackages []string

	DaemonReloads     int
	EnabledServices   []string
	StartedServices   []string
	RestartedServices []string

	// Downloads maps source URL to destination path.
	Downloads     map[string]string
	DownloadCalls int

	UpdateIndexErr     error
	InstallPackagesErr error
	CreateUserErr      error
	WriteErr           error
	DownloadErr        error
	RestartServiceErr  error
}

func NewFake() *Fake {
	return &Fake{
		FactsInfo: osinfo.Info{
			Kernel:              "linux",
			Platform:            "amd64",
			OS:                  "GNU/Linux",
			Distribution:        "ubuntu",
			DistributionVersion: "24.04",
			Hostname:            "fake-host",
			CPUs:                4,
			TotalMemoryMB:       4096,
			FreeDiskMB:          20480,
		},
		Files:     make(map[string]*FakeFile),
		Users:     make(map[string]bool),
		Downloads: make(map[string]string),
	}
}

func (f *Fake) Facts(_ context.Context) (osinfo.Info, error) {
	if f.FactsErr != nil {
		return osinfo.Info{}, f.FactsErr
	}

	return f.FactsInfo, nil
}

func (f *Fake) UpdatePackageIndex(_ context.Context) error {
	if f.UpdateIndexErr != nil {
		return f.UpdateIndexErr
	}
	f.IndexUpdated = true

	return nil
}

func (f *Fake) InstallPackages(_ context.Context, packs ...string) error {
	if f.InstallPackagesErr != nil {
		return f.InstallPackagesErr
	}
	f.InstalledPackages = append(f.InstalledPackages, packs...)

	return nil
}

func (f *Fake) DaemonReload(_ context.Context) error {
	f.DaemonReloads++

	return nil
}

func (f *Fake) EnableService(_ context.Context, name string) error {
	f.EnabledServices = append(f.EnabledServices, name)

	return nil
}

func (f *Fake) StartService(_ context.Context, name string) error {
	f.StartedServices = append(f.StartedServices, name)

	return nil
}

func (f *Fake) RestartService(_ context.Context, name string) error {
	if f.RestartServiceErr != nil {
		return f.RestartServiceErr
	}
	f.RestartedServices = append(f.RestartedServices, name)

	return nil
}

func (f *Fake) UserExists(name string) bool {
	return f.Users[name]
}

func (f *Fake) CreateUser(_ context.Context, name string, _ string, _ string) error {
	if f.CreateUserErr != nil {
		return f.CreateUserErr
	}
	f.Users[name] = true

	return nil
}

func (f *Fake) FileExists(path string) bool {
	_, ok := f.Files[path]

	return ok
}

func (f *Fake) ReadFile(path string) ([]byte, error) {
	file, ok := f.Files[path]
	if !ok {
		return nil, errors.Errorf("open %s: no such file or directory", path)
	}

	return file.Contents, nil
}

func (f *Fake) WriteFileAtomic(path string, contents []byte, perm os.FileMode) error {
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.Files[path] = &FakeFile{Contents: contents, Mode: perm}

	return nil
}

func (f *Fake) MkdirAll(path string, perm os.FileMode) error {
	for p := path; p != "/" && p != "."; p = filepath.Dir(p) {
		if _, ok := f.Files[p]; !ok {
			f.Files[p] = &FakeFile{Mode: perm, IsDir: true}
		}
	}

	return nil
}

func (f *Fake) Chmod(path string, perm os.FileMode) error {
	file, ok := f.Files[path]
	if !ok {
		return errors.Errorf("chmod %s: no such file or directory", path)
	}
	file.Mode = perm

	return nil
}

func (f *Fake) Chown(path string, owner string, group string) error {
	file, ok := f.Files[path]
	if !ok {
		return errors.Errorf("chown %s: no such file or directory", path)
	}
	file.Owner = owner
	file.Group = group

	for p, entry := range f.Files {
		if p != path && strings.HasPrefix(p, path+"/") {
			entry.Owner = owner
			entry.Group = group
		}
	}

	return nil
}

func (f *Fake) Symlink(target string, link string) error {
	f.Files[link] = &FakeFile{Link: target}

	return nil
}

func (f *Fake) Copy(src string, dst string) error {
	file, ok := f.Files[src]
	if !ok {
		return errors.Errorf("copy %s: no such file or directory", src)
	}
	contents := make([]byte, len(file.Contents))
	copy(contents, file.Contents)
	f.Files[dst] = &FakeFile{Contents: contents, Mode: file.Mode, Owner: file.Owner, Group: file.Group}

	return nil
}

func (f *Fake) Download(_ context.Context, source string, dst string) error {
	if f.DownloadErr != nil {
		return f.DownloadErr
	}
	f.DownloadCalls++
	f.Downloads[source] = dst
	if _, ok := f.Files[dst]; !ok {
		f.Files[dst] = &FakeFile{IsDir: true, Mode: 0755}
	}

	return nil
}
