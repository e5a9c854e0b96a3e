// Package config provides configuration file parsing.
package config

import (
	"fmt"
	"strings"

	"github.com/fgeck/gowake/internal/models"
	"github.com/fgeck/gowake/internal/wol"
	"github.com/spf13/viper"
)

// Parser handles configuration file parsing.
type Parser struct {
	v *viper.Viper
}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	v := viper.New()
	v.SetConfigType("yaml")
	return &Parser{v: v}
}

// LoadFile loads configuration from a file path.
func (p *Parser) LoadFile(path string) (*models.Config, error) {
	p.v.SetConfigFile(path)

	if err := p.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return p.parse()
}

// LoadReader loads configuration from a string (useful for testing).
func (p *Parser) LoadReader(content string) (*models.Config, error) {
	if err := p.v.ReadConfig(strings.NewReader(content)); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return p.parse()
}

func (p *Parser) parse() (*models.Config, error) {
	cfg := Default()

	if p.v.IsSet("broadcast") {
		cfg.Broadcast = p.v.GetString("broadcast")
	}
	if p.v.IsSet("ports") {
		cfg.Ports = p.v.GetIntSlice("ports")
	}
	if p.v.IsSet("timeout") {
		cfg.Timeout = p.v.GetDuration("timeout")
	}

	if p.v.IsSet("hosts") {
		if err := p.v.UnmarshalKey("hosts", &cfg.Hosts); err != nil {
			return nil, fmt.Errorf("parsing hosts: %w", err)
		}
		for i, h := range cfg.Hosts {
			if h.Name == "" {
				return nil, fmt.Errorf("hosts[%d].name is required", i)
			}
			if h.MAC == "" {
				return nil, fmt.Errorf("host %q: mac is required", h.Name)
			}
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration used when no file is supplied:
// the canonical Wake-on-LAN target, limited broadcast on port 9.
func Default() *models.Config {
	return &models.Config{
		Broadcast: wol.DefaultBroadcastAddress,
		Ports:     []int{wol.DefaultPort},
		Timeout:   wol.DefaultTimeout,
	}
}

// Validate performs validation on the loaded configuration.
func Validate(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if cfg.Broadcast == "" {
		return fmt.Errorf("broadcast is required")
	}

	if len(cfg.Ports) == 0 {
		return fmt.Errorf("at least one port is required")
	}
	for _, port := range cfg.Ports {
		if port < 0 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}

	seen := make(map[string]bool, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		if seen[h.Name] {
			return fmt.Errorf("duplicate host name: %q", h.Name)
		}
		seen[h.Name] = true

		if _, err := wol.ParseMAC(h.MAC); err != nil {
			return fmt.Errorf("host %q: %w", h.Name, err)
		}
	}

	return nil
}
