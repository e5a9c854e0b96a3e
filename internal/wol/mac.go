// Package wol implements the Wake-on-LAN magic packet protocol: parsing
// MAC addresses from their common textual forms, building the fixed
// 102-byte magic packet, and broadcasting it over UDP.
// https://en.wikipedia.org/wiki/Wake-on-LAN
package wol

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	// ErrInvalidFormat is returned when input text does not decode to a
	// 6-byte EUI-48 hardware address.
	ErrInvalidFormat = errors.New("invalid MAC address format")

	// ErrEmptyInput is returned when an address was required but the
	// input was empty or whitespace-only.
	ErrEmptyInput = errors.New("empty MAC address")
)

// ParseMAC parses a textual MAC address into a 6-byte hardware address.
//
// Accepted forms (a fixed capability, case-insensitive):
//
//	0123456789AB       bare 12 hex digits
//	01-23-45-67-89-AB  hyphen-separated byte groups
//	01:23:45:67:89:AB  colon-separated byte groups
//	0123.4567.89AB     dot-separated 4-digit groups
//
// Unlike net.ParseMAC, the bare form is accepted and 8- or 20-byte
// EUI-64/InfiniBand addresses are rejected: Wake-on-LAN targets are
// always 6 bytes.
func ParseMAC(s string) (net.HardwareAddr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyInput
	}

	digits, err := macHexDigits(s)
	if err != nil {
		return nil, err
	}

	hw, err := hex.DecodeString(digits)
	if err != nil || len(hw) != macLen {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return hw, nil
}

// macHexDigits strips the recognized separators from s, enforcing that
// they appear exactly where the detected form dictates.
func macHexDigits(s string) (string, error) {
	switch len(s) {
	case 12:
		// bare form, no separators allowed
		return s, nil
	case 17:
		// pairwise form: 6 groups of 2 joined by a single separator
		sep := s[2]
		if sep != ':' && sep != '-' {
			return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		groups := strings.Split(s, string(sep))
		if len(groups) != 6 {
			return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		for _, g := range groups {
			if len(g) != 2 {
				return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
			}
		}
		return strings.Join(groups, ""), nil
	case 14:
		// dotted form: 3 groups of 4
		groups := strings.Split(s, ".")
		if len(groups) != 3 {
			return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		for _, g := range groups {
			if len(g) != 4 {
				return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
			}
		}
		return strings.Join(groups, ""), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}
