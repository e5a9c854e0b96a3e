package main

import (
	"fmt"
	"os"

	"github.com/fgeck/gowake/internal/config"
	"github.com/fgeck/gowake/internal/wol"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the hosts config file",
	Long:  `Validate the hosts config file without sending any packets.`,
	RunE:  validateConfig,
}

func validateConfig(cmd *cobra.Command, args []string) error {
	if configFile == "" {
		log.Error().Msg("config file is required")
		return cmd.Help()
	}

	// Check if file exists
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		log.Error().Str("file", configFile).Msg("config file not found")
		return fmt.Errorf("config file not found: %s", configFile)
	}

	// Load configuration
	parser := config.NewParser()
	cfg, err := parser.LoadFile(configFile)
	if err != nil {
		log.Error().Err(err).Str("file", configFile).Msg("failed to parse config")
		return err
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Error().Err(err).Msg("configuration validation failed")
		return err
	}

	// Print configuration summary
	fmt.Println("Configuration is valid!")
	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  Broadcast: %s\n", cfg.Broadcast)
	fmt.Printf("  Ports: %v\n", cfg.Ports)
	fmt.Printf("  Timeout: %s\n", cfg.Timeout)

	if len(cfg.Hosts) > 0 {
		fmt.Println()
		fmt.Printf("Hosts (%d):\n", len(cfg.Hosts))
		for _, h := range cfg.Hosts {
			hw, err := wol.ParseMAC(h.MAC)
			if err != nil {
				// Validate already checked every MAC, keep this loud anyway.
				return fmt.Errorf("host %q: %w", h.Name, err)
			}
			fmt.Printf("  %s: %s\n", h.Name, hw)
		}
	}

	return nil
}
