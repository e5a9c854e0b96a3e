//go:build e2e

package e2e

import (
	"context"
	"io"
	"os"
	"strconv"
	"testing"

	"github.com/fgeck/gowake/internal/models"
	"github.com/fgeck/gowake/internal/services/wake"
	"github.com/fgeck/gowake/internal/wol"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// TestRealWake_E2E broadcasts to a real machine on the local segment.
// Only runs when TEST_WOL_MAC is set; TEST_WOL_BROADCAST and
// TEST_WOL_PORT override the defaults.
func TestRealWake_E2E(t *testing.T) {
	mac := os.Getenv("TEST_WOL_MAC")
	if mac == "" {
		t.Skip("TEST_WOL_MAC not set")
	}

	opts := []wol.Option{}
	if broadcast := os.Getenv("TEST_WOL_BROADCAST"); broadcast != "" {
		opts = append(opts, wol.WithBroadcastAddress(broadcast))
	}
	if portStr := os.Getenv("TEST_WOL_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		require.NoError(t, err)
		opts = append(opts, wol.WithPorts(port))
	}

	sender, err := wol.NewSender(opts...)
	require.NoError(t, err)
	defer func() { _ = sender.Close() }()

	svc := wake.New(testLogger(), sender)

	result, err := svc.Wake(context.Background(), models.WakeConfig{
		Target: mac,
		MAC:    mac,
	})

	require.NoError(t, err)
	assert.Nil(t, result.Error)
	assert.True(t, result.PacketSent)
}
