package packagemanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FamilyForDistribution(t *testing.T) {
	tests := []struct {
		name           string
		distribution   string
		expectedFamily Family
		expectError    bool
	}{
		{
			name:           "debian",
			distribution:   "debian",
			expectedFamily: FamilyDebian,
		},
		{
			name:           "ubuntu",
			distribution:   "ubuntu",
			expectedFamily: FamilyDebian,
		},
		{
			name:           "centos",
			distribution:   "centos",
			expectedFamily: FamilyRHEL,
		},
		{
			name:           "almalinux",
			distribution:   "almalinux",
			expectedFamily: FamilyRHEL,
		},
		{
			name:           "rocky",
			distribution:   "rocky",
			expectedFamily: FamilyRHEL,
		},
		{
			name:         "arch_is_unsupported",
			distribution: "arch",
			expectError:  true,
		},
		{
			name:         "empty_is_unsupported",
			distribution: "",
			expectError:  true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			family, err := FamilyForDistribution(test.distribution)

			if test.expectError {
				require.Error(t, err)

				var unsupportedErr *ErrUnsupportedDistribution
				require.ErrorAs(t, err, &unsupportedErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expectedFamily, family)
		})
	}
}
