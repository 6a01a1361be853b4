package provision

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	osinfo "github.com/gameport/gameportctl/pkg/os_info"
	"github.com/gameport/gameportctl/pkg/utils"
	"github.com/pkg/errors"
)

const (
	minCPUs     = 2
	minMemoryMB = 2048
	minDiskMB   = 10240
)

func filterAndCheckHost(state provisionState) (provisionState, error) {
	if strings.HasPrefix(state.Host, "http://") {
		state.Host = state.Host[7:]
	} else if strings.HasPrefix(state.Host, "https://") {
		state.Host = state.Host[8:]
	}

	state.Host = strings.TrimRight(state.Host, "/?&")

	for _, s := range state.Host {
		if s == '/' || s == '?' || s == '&' {
			return state, errors.New("invalid host")
		}
	}

	host, port, err := net.SplitHostPort(state.Host)
	if err == nil {
		state.Host = host
		state.Port, err = strconv.Atoi(port)
		if err != nil {
			return state, errors.New("invalid port")
		}
	}

	if state.Port == 0 {
		state.Port = defaultPanelPort
	}

	// a host made only of digits and dots must be a valid IPv4 address
	if looksLikeIPv4(state.Host) && !utils.IsIPv4(state.Host) {
		return state, errors.New("invalid host")
	}

	return state, nil
}

func looksLikeIPv4(host string) bool {
	if !strings.Contains(host, ".") {
		return false
	}

	for _, r := range host {
		if r != '.' && (r < '0' || r > '9') {
			return false
		}
	}

	return true
}

// resourceWarnings flags hosts below the recommended panel footprint.
// Warnings never abort a run on their own, the operator decides.
func resourceWarnings(info osinfo.Info) []string {
	var warnings []string

	if info.CPUs < minCPUs {
		warnings = append(warnings, fmt.Sprintf(
			"Host has %d CPU core(s), %d are recommended. The panel may be slow.",
			info.CPUs, minCPUs,
		))
	}

	if info.TotalMemoryMB < minMemoryMB {
		warnings = append(warnings, fmt.Sprintf(
			"Host has %d MB of memory, %d MB are recommended. The panel may be slow.",
			info.TotalMemoryMB, minMemoryMB,
		))
	}

	if info.FreeDiskMB < minDiskMB {
		warnings = append(warnings, fmt.Sprintf(
			"Host has %d MB of free disk space, %d MB are recommended. Provisioning may fail.",
			info.FreeDiskMB, minDiskMB,
		))
	}

	return warnings
}
