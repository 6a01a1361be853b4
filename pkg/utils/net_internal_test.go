package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsIPv4(t *testing.T) {
	tests := []struct {
		addr     string
		expected bool
	}{
		{"127.0.0.1", true},
		{"192.168.1.10", true},
		{"999.300.1.1", false},
		{"2001:db8::1", false},
		{"panel.example.com", false},
		{"", false},
	}
	for _, test := range tests {
		t.Run(test.addr, func(t *testing.T) {
			assert.Equal(t, test.expected, IsIPv4(test.addr))
		})
	}
}

func Test_IsIPv6(t *testing.T) {
	tests := []struct {
		addr     string
		expected bool
	}{
		{"2001:db8::1", true},
		{"::1", true},
		{"127.0.0.1", false},
		{"panel.example.com", false},
	}
	for _, test := range tests {
		t.Run(test.addr, func(t *testing.T) {
			assert.Equal(t, test.expected, IsIPv6(test.addr))
		})
	}
}
