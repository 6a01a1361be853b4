//go:build linux

package oscore

import (
	"context"
	"os/user"

	"github.com/pkg/errors"
)

func CreateGroup(ctx context.Context, groupname string) error {
	_, err := user.LookupGroup(groupname)
	if err == nil {
		return NewGroupAlreadyExistsError(groupname)
	}

	err = ExecCommand(ctx, "groupadd", "--system", groupname)
	if err != nil {
		return errors.WithMessage(err, "failed to exec groupadd command")
	}

	return nil
}

func CreateUser(
	ctx context.Context, username string, opts ...CreateUserOption,
) error {
	options := applyCreateUserOptions(opts...)

	_, err := user.Lookup(username)
	if err == nil {
		return NewUserAlreadyExistsError(username)
	}

	args := []string{"-m"}

	if options.system {
		args = append(args, "--system")
	}

	if options.workDir != "" {
		args = append(args, "-d", options.workDir)
	}

	shell := "/bin/bash"
	if options.shell != "" {
		shell = options.shell
	}
	args = append(args, "-s", shell)

	gid, err := user.LookupGroup(username)
	if err == nil {
		args = append(args, "-g", gid.Name)
	}

	args = append(args, username)

	err = ExecCommand(ctx, "useradd", args...)
	if err != nil {
		return errors.WithMessage(err, "failed to exec useradd command")
	}

	return nil
}

func UserExists(username string) bool {
	_, err := user.Lookup(username)

	return err == nil
}
