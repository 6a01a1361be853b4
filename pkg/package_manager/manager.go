package packagemanager

import (
	"context"

	contextInternal "github.com/gameport/gameportctl/internal/context"
)

// Family is a coarse grouping of distributions that share a package
// manager strategy. The set is deliberately closed: anything outside it
// fails with ErrUnsupportedDistribution instead of silently doing nothing.
type Family string

const (
	FamilyDebian Family = "debian-like"
	FamilyRHEL   Family = "rhel-like"
)

type PackageManager interface {
	Install(ctx context.Context, packs ...string) error
	CheckForUpdates(ctx context.Context) error
	Remove(ctx context.Context, packs ...string) error
}

func FamilyForDistribution(distribution string) (Family, error) {
	switch distribution {
	case DistributionDebian, DistributionUbuntu, DistributionRaspbian:
		return FamilyDebian, nil
	case DistributionCentOS, DistributionAlmaLinux, DistributionRockyLinux,
		DistributionFedora, DistributionAmazon:
		return FamilyRHEL, nil
	}

	return "", NewErrUnsupportedDistribution(distribution)
}

//nolint:ireturn,nolintlint
func Load(ctx context.Context) (PackageManager, error) {
	osInfo := contextInternal.OSInfoFromContext(ctx)

	family, err := FamilyForDistribution(osInfo.Distribution)
	if err != nil {
		return nil, err
	}

	switch family {
	case FamilyDebian:
		return &apt{}, nil
	case FamilyRHEL:
		return newDNF(), nil
	}

	return nil, NewErrUnsupportedDistribution(osInfo.Distribution)
}
