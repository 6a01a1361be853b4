package packagemanager

import "fmt"

type ErrUnsupportedDistribution struct {
	distro string
}

func NewErrUnsupportedDistribution(distro string) *ErrUnsupportedDistribution {
	return &ErrUnsupportedDistribution{
		distro: distro,
	}
}

func (e *ErrUnsupportedDistribution) Error() string {
	return fmt.Sprintf(
		"unsupported distribution '%s', install the required packages manually and re-run provisioning",
		e.distro,
	)
}
