package utils

import "net"

// IsIPv4 reports whether addr parses as an IPv4 address.
func IsIPv4(addr string) bool {
	parsed := net.ParseIP(addr)

	return parsed != nil && parsed.To4() != nil
}

// IsIPv6 reports whether addr parses as an IPv6 address.
func IsIPv6(addr string) bool {
	parsed := net.ParseIP(addr)

	return parsed != nil && parsed.To4() == nil
}
