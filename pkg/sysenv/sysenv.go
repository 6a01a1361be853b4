package sysenv

import (
	"context"
	"os"

	contextInternal "github.com/gameport/gameportctl/internal/context"
	"github.com/gameport/gameportctl/pkg/oscore"
	osinfo "github.com/gameport/gameportctl/pkg/os_info"
	packagemanager "github.com/gameport/gameportctl/pkg/package_manager"
	"github.com/gameport/gameportctl/pkg/service"
	"github.com/gameport/gameportctl/pkg/utils"
	"github.com/pkg/errors"
)

// Environment is the capability surface a provisioning run mutates the
// host through. Provisioning stages depend on this interface only, so the
// whole stage machine can run against an in-memory fake in tests.
type Environment interface {
	Facts(ctx context.Context) (osinfo.Info, error)

	UpdatePackageIndex(ctx context.Context) error
	InstallPackages(ctx context.Context, packs ...string) error

	DaemonReload(ctx context.Context) error
	EnableService(ctx context.Context, name string) error
	StartService(ctx context.Context, name string) error
	RestartService(ctx context.Context, name string) error

	UserExists(name string) bool
	CreateUser(ctx context.Context, name string, homeDir string, shell string) error

	FileExists(path string) bool
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(path string, contents []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Chmod(path string, perm os.FileMode) error
	// Chown walks path recursively when it is a directory.
	Chown(path string, owner string, group string) error
	Symlink(target string, link string) error
	Copy(src string, dst string) error

	Download(ctx context.Context, source string, dst string) error
}

// Host is the real environment. All operations delegate to the same
// package manager, service manager and filesystem helpers the rest of
// the tool uses.
type Host struct {
	pm packagemanager.PackageManager
}

func NewHost() *Host {
	return &Host{}
}

func (h *Host) Facts(ctx context.Context) (osinfo.Info, error) {
	info := contextInternal.OSInfoFromContext(ctx)
	if info.Distribution != "" {
		return info, nil
	}

	return osinfo.GetOSInfo(ctx)
}

func (h *Host) packageManager(ctx context.Context) (packagemanager.PackageManager, error) {
	if h.pm != nil {
		return h.pm, nil
	}

	pm, err := packagemanager.Load(ctx)
	if err != nil {
		return nil, err
	}
	h.pm = pm

	return pm, nil
}

func (h *Host) UpdatePackageIndex(ctx context.Context) error {
	pm, err := h.packageManager(ctx)
	if err != nil {
		return err
	}

	return pm.CheckForUpdates(ctx)
}

func (h *Host) InstallPackages(ctx context.Context, packs ...string) error {
	pm, err := h.packageManager(ctx)
	if err != nil {
		return err
	}

	return pm.Install(ctx, packs...)
}

func (h *Host) DaemonReload(ctx context.Context) error {
	return service.DaemonReload(ctx)
}

func (h *Host) EnableService(ctx context.Context, name string) error {
	return service.Enable(ctx, name)
}

func (h *Host) StartService(ctx context.Context, name string) error {
	return service.Start(ctx, name)
}

func (h *Host) RestartService(ctx context.Context, name string) error {
	return service.Restart(ctx, name)
}

func (h *Host) UserExists(name string) bool {
	return oscore.UserExists(name)
}

func (h *Host) CreateUser(ctx context.Context, name string, homeDir string, shell string) error {
	err := oscore.CreateGroup(ctx, name)
	if err != nil {
		var existsErr *oscore.GroupAlreadyExistsError
		if !errors.As(err, &existsErr) {
			return errors.WithMessage(err, "failed to create group")
		}
	}

	err = oscore.CreateUser(
		ctx,
		name,
		oscore.WithSystemAccount(),
		oscore.WithWorkDir(homeDir),
		oscore.WithShell(shell),
	)
	if err != nil {
		var existsErr *oscore.UserAlreadyExistsError
		if !errors.As(err, &existsErr) {
			return errors.WithMessage(err, "failed to create user")
		}
	}

	return nil
}

func (h *Host) FileExists(path string) bool {
	return utils.IsFileExists(path)
}

func (h *Host) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (h *Host) WriteFileAtomic(path string, contents []byte, perm os.FileMode) error {
	return utils.WriteFileAtomic(path, contents, perm)
}

func (h *Host) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (h *Host) Chmod(path string, perm os.FileMode) error {
	return os.Chmod(path, perm)
}

func (h *Host) Chown(path string, owner string, group string) error {
	return oscore.ChownRecursive(context.Background(), path, owner, group)
}

func (h *Host) Symlink(target string, link string) error {
	existing, err := os.Readlink(link)
	if err == nil && existing == target {
		return nil
	}
	if err == nil {
		if err := os.Remove(link); err != nil {
			return errors.WithMessagef(err, "failed to remove stale symlink %s", link)
		}
	}

	return os.Symlink(target, link)
}

func (h *Host) Copy(src string, dst string) error {
	return utils.Copy(src, dst)
}

func (h *Host) Download(ctx context.Context, source string, dst string) error {
	return utils.Download(ctx, source, dst)
}
