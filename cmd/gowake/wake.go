package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fgeck/gowake/internal/config"
	"github.com/fgeck/gowake/internal/models"
	"github.com/fgeck/gowake/internal/services/wake"
	"github.com/fgeck/gowake/internal/wol"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	broadcastFlag string
	portsFlag     []int
	timeoutFlag   time.Duration
)

var wakeCmd = &cobra.Command{
	Use:   "wake [mac-or-host ...]",
	Short: "Broadcast magic packets to the given targets",
	Long: `Broadcast magic packets to the given targets.

Targets are MAC addresses (01-23-45-67-89-AB, 01:23:45:67:89:AB,
0123.4567.89AB or 0123456789AB) or host names from the config file.

With one or more targets, all of them are woken concurrently and a
per-target result is printed; the command fails if any target failed.
With no targets, addresses are read from standard input one per line
until a blank line, and failures never abort the loop.`,
	RunE: runWake,
}

func init() {
	wakeCmd.Flags().StringVarP(&broadcastFlag, "broadcast", "b", "", "destination broadcast address")
	wakeCmd.Flags().IntSliceVarP(&portsFlag, "port", "p", nil, "destination UDP port (repeatable)")
	wakeCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "per-datagram send timeout")
}

func runWake(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags override the config file.
	if cmd.Flags().Changed("broadcast") {
		cfg.Broadcast = broadcastFlag
	}
	if cmd.Flags().Changed("port") {
		cfg.Ports = portsFlag
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = timeoutFlag
	}

	sender, err := wol.NewSender(
		wol.WithBroadcastAddress(cfg.Broadcast),
		wol.WithPorts(cfg.Ports...),
		wol.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to open sender")
		return err
	}
	defer func() { _ = sender.Close() }()

	log.Debug().
		Str("broadcast", cfg.Broadcast).
		Ints("ports", cfg.Ports).
		Dur("timeout", cfg.Timeout).
		Msg("sender ready")

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warn().Str("signal", sig.String()).Msg("received signal, shutting down")
		cancel()
	}()

	svc := wake.New(log.Logger, sender)

	if len(args) > 0 {
		return wakeArgs(ctx, cmd, svc, cfg, args)
	}
	return wakeInteractive(ctx, cmd, svc, cfg)
}

// wakeArgs wakes all arguments concurrently and prints one result per
// target in input order.
func wakeArgs(ctx context.Context, cmd *cobra.Command, svc wake.Service, cfg *models.Config, args []string) error {
	targets := make([]models.WakeConfig, 0, len(args))
	for _, arg := range args {
		targets = append(targets, models.WakeConfig{Target: arg, MAC: cfg.MACFor(arg)})
	}

	failed := 0
	for _, result := range svc.WakeAll(ctx, targets) {
		printResult(cmd, result)
		if result.Error != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d targets failed", failed, len(targets))
	}
	return nil
}

// wakeInteractive reads one target per line until a blank line. Failures
// are printed per line and never terminate the loop.
func wakeInteractive(ctx context.Context, cmd *cobra.Command, svc wake.Service, cfg *models.Config) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		result, err := svc.Wake(ctx, models.WakeConfig{Target: line, MAC: cfg.MACFor(line)})
		if err != nil {
			return err
		}
		printResult(cmd, result)
	}
	return scanner.Err()
}

func printResult(cmd *cobra.Command, result *models.WakeResult) {
	if result.Error != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s [FAIL] %v\n", result.Target, result.Error)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [OK]\n", result.Target)
}

// loadConfig reads the config file if one was given, otherwise returns
// the defaults.
func loadConfig() (*models.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}

	parser := config.NewParser()
	cfg, err := parser.LoadFile(configFile)
	if err != nil {
		log.Error().Err(err).Str("file", configFile).Msg("failed to load config")
		return nil, err
	}
	return cfg, nil
}
