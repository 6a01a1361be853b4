package service

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrInactiveService = errors.New("service is inactive")

type NotFoundError struct {
	ServiceName string
}

func NewNotFoundError(serviceName string) *NotFoundError {
	return &NotFoundError{
		ServiceName: serviceName,
	}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("service %s not found", e.ServiceName)
}

type ErrUnsupportedInit struct {
	distro string
}

func NewErrUnsupportedInit(distro string) *ErrUnsupportedInit {
	return &ErrUnsupportedInit{
		distro: distro,
	}
}

func (e *ErrUnsupportedInit) Error() string {
	return fmt.Sprintf("no supported service manager found on '%s'", e.distro)
}
