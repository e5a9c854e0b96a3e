// Package wake orchestrates Wake-on-LAN operations.
package wake

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/fgeck/gowake/internal/models"
	"github.com/fgeck/gowake/internal/wol"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"
)

// Service defines the interface for Wake-on-LAN operations.
type Service interface {
	Wake(ctx context.Context, cfg models.WakeConfig) (*models.WakeResult, error)
	WakeAll(ctx context.Context, cfgs []models.WakeConfig) []*models.WakeResult
}

// Client wraps the packet sender for mocking.
type Client interface {
	Wake(ctx context.Context, hw net.HardwareAddr) error
}

// SenderClient is the default Client implementation backed by a
// wol.Sender.
type SenderClient struct {
	Sender *wol.Sender
}

// Wake sends the magic packet for hw to all of the sender's endpoints.
func (c *SenderClient) Wake(ctx context.Context, hw net.HardwareAddr) error {
	return c.Sender.WakeHardwareAddrContext(ctx, hw)
}

// Impl implements the wake Service interface.
type Impl struct {
	client Client
	logger zerolog.Logger
}

// New creates a new wake service backed by sender.
func New(logger zerolog.Logger, sender *wol.Sender) *Impl {
	return &Impl{
		client: &SenderClient{Sender: sender},
		logger: logger,
	}
}

// NewWithClients creates a new wake service with a custom client (for
// testing).
func NewWithClients(logger zerolog.Logger, client Client) *Impl {
	return &Impl{
		client: client,
		logger: logger,
	}
}

// Wake parses the target's MAC address and sends its magic packet.
// Domain failures are stored in the result; the error return is reserved
// for programming errors.
func (s *Impl) Wake(ctx context.Context, cfg models.WakeConfig) (*models.WakeResult, error) {
	result := &models.WakeResult{Target: cfg.Target}
	start := time.Now()

	hw, err := wol.ParseMAC(cfg.MAC)
	if err != nil {
		result.Error = fmt.Errorf("invalid MAC address %q: %w", cfg.MAC, err)
		return result, nil
	}

	s.logger.Info().
		Str("target", cfg.Target).
		Str("mac", hw.String()).
		Msg("sending magic packet")

	if err := s.client.Wake(ctx, hw); err != nil {
		result.Duration = time.Since(start)
		result.Error = err
		return result, nil //nolint:nilerr // error is stored in result struct by design
	}

	result.PacketSent = true
	result.Duration = time.Since(start)

	s.logger.Info().
		Str("target", cfg.Target).
		Dur("duration", result.Duration).
		Msg("magic packet sent")

	return result, nil
}

// WakeAll wakes every target concurrently and waits for all of them.
// Every target is attempted; per-target failures are reported in the
// corresponding result, in input order.
func (s *Impl) WakeAll(ctx context.Context, cfgs []models.WakeConfig) []*models.WakeResult {
	return iter.Map(cfgs, func(cfg *models.WakeConfig) *models.WakeResult {
		result, _ := s.Wake(ctx, *cfg)
		return result
	})
}
