package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	osinfo "github.com/gameport/gameportctl/pkg/os_info"
)

func Test_filterAndCheckHost(t *testing.T) {
	tests := []struct {
		name          string
		host          string
		expectedHost  string
		expectedPort  int
		expectedError string
	}{
		{
			name:         "with_http",
			host:         "http://panel.gameport.io",
			expectedHost: "panel.gameport.io",
			expectedPort: 3000,
		},
		{
			name:         "with_https",
			host:         "https://panel.gameport.io",
			expectedHost: "panel.gameport.io",
			expectedPort: 3000,
		},
		{
			name:         "without_scheme",
			host:         "panel.gameport.io",
			expectedHost: "panel.gameport.io",
			expectedPort: 3000,
		},
		{
			name:         "other_port",
			host:         "https://panel.gameport.io:9000",
			expectedHost: "panel.gameport.io",
			expectedPort: 9000,
		},
		{
			name:         "with_slash",
			host:         "https://www.gameport.io/",
			expectedHost: "www.gameport.io",
			expectedPort: 3000,
		},
		{
			name:         "ip",
			host:         "127.0.0.1",
			expectedHost: "127.0.0.1",
			expectedPort: 3000,
		},
		{
			name:          "url_address",
			host:          "http://panel.gameport.io/en",
			expectedError: "invalid host",
		},
		{
			name:          "malformed_ip",
			host:          "999.300.1.1",
			expectedError: "invalid host",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			initState := provisionState{
				Host: test.host,
			}

			resultState, err := filterAndCheckHost(initState)

			if test.expectedError == "" {
				require.NoError(t, err)
				assert.Equal(t, test.expectedHost, resultState.Host)
				assert.Equal(t, test.expectedPort, resultState.Port)
			} else {
				assert.Equal(t, test.expectedError, err.Error())
			}
		})
	}
}

func Test_looksLikeIPv4(t *testing.T) {
	assert.True(t, looksLikeIPv4("127.0.0.1"))
	assert.True(t, looksLikeIPv4("999.300.1.1"))
	assert.False(t, looksLikeIPv4("panel.gameport.io"))
	assert.False(t, looksLikeIPv4("2001:db8::1"))
	assert.False(t, looksLikeIPv4("3000"))
}

func Test_resourceWarnings(t *testing.T) {
	tests := []struct {
		name     string
		info     osinfo.Info
		expected int
	}{
		{
			name:     "healthy_host",
			info:     osinfo.Info{CPUs: 4, TotalMemoryMB: 4096, FreeDiskMB: 20480},
			expected: 0,
		},
		{
			name:     "low_cpu",
			info:     osinfo.Info{CPUs: 1, TotalMemoryMB: 4096, FreeDiskMB: 20480},
			expected: 1,
		},
		{
			name:     "everything_low",
			info:     osinfo.Info{CPUs: 1, TotalMemoryMB: 512, FreeDiskMB: 100},
			expected: 3,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Len(t, resourceWarnings(test.info), test.expected)
		})
	}
}
