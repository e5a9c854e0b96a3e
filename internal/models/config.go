// Package models contains the data structures used throughout gowake.
package models

import "time"

// Config holds the complete gowake configuration.
type Config struct {
	Broadcast string        // destination IPv4 broadcast address
	Ports     []int         // destination UDP ports, one datagram per port
	Timeout   time.Duration // per-datagram send timeout
	Hosts     []HostConfig  // optional named hosts
}

// HostConfig maps a friendly name to a MAC address.
type HostConfig struct {
	Name string `mapstructure:"name"`
	MAC  string `mapstructure:"mac"`
}

// MACFor resolves a wake target against the configured host names.
// Unknown targets are returned unchanged so they can be parsed as
// literal MAC text.
func (c *Config) MACFor(target string) string {
	for _, h := range c.Hosts {
		if h.Name == target {
			return h.MAC
		}
	}
	return target
}
