package wake

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"

	"github.com/fgeck/gowake/internal/models"
	"github.com/fgeck/gowake/internal/wol"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	mu       sync.Mutex
	wakeFunc func(ctx context.Context, hw net.HardwareAddr) error
	captured []net.HardwareAddr
}

func (m *mockClient) Wake(ctx context.Context, hw net.HardwareAddr) error {
	m.mu.Lock()
	m.captured = append(m.captured, hw)
	m.mu.Unlock()

	if m.wakeFunc != nil {
		return m.wakeFunc(ctx, hw)
	}
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestWake_Success(t *testing.T) {
	client := &mockClient{}
	svc := NewWithClients(testLogger(), client)

	result, err := svc.Wake(context.Background(), models.WakeConfig{
		Target: "office-pc",
		MAC:    "01-23-45-67-89-AB",
	})

	require.NoError(t, err)
	assert.True(t, result.PacketSent)
	assert.Nil(t, result.Error)
	assert.Equal(t, "office-pc", result.Target)

	require.Len(t, client.captured, 1)
	assert.Equal(t, net.HardwareAddr{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB}, client.captured[0])
}

func TestWake_InvalidMAC(t *testing.T) {
	client := &mockClient{}
	svc := NewWithClients(testLogger(), client)

	result, err := svc.Wake(context.Background(), models.WakeConfig{
		Target: "broken",
		MAC:    "not-a-mac",
	})

	require.NoError(t, err)
	assert.False(t, result.PacketSent)
	require.NotNil(t, result.Error)
	assert.ErrorIs(t, result.Error, wol.ErrInvalidFormat)
	// The network layer must never be reached.
	assert.Empty(t, client.captured)
}

func TestWake_SendFailed(t *testing.T) {
	client := &mockClient{
		wakeFunc: func(ctx context.Context, hw net.HardwareAddr) error {
			return errors.New("network unreachable")
		},
	}
	svc := NewWithClients(testLogger(), client)

	result, err := svc.Wake(context.Background(), models.WakeConfig{
		Target: "nas",
		MAC:    "AA:BB:CC:DD:EE:FF",
	})

	require.NoError(t, err)
	assert.False(t, result.PacketSent)
	require.NotNil(t, result.Error)
	assert.Contains(t, result.Error.Error(), "network unreachable")
}

func TestWakeAll_AttemptsEveryTarget(t *testing.T) {
	client := &mockClient{
		wakeFunc: func(ctx context.Context, hw net.HardwareAddr) error {
			if hw[0] == 0xAA {
				return errors.New("network unreachable")
			}
			return nil
		},
	}
	svc := NewWithClients(testLogger(), client)

	results := svc.WakeAll(context.Background(), []models.WakeConfig{
		{Target: "nas", MAC: "AA:BB:CC:DD:EE:FF"},
		{Target: "bogus", MAC: "zz"},
		{Target: "office-pc", MAC: "01:23:45:67:89:AB"},
	})

	require.Len(t, results, 3)

	// Results arrive in input order regardless of completion order.
	assert.Equal(t, "nas", results[0].Target)
	assert.False(t, results[0].PacketSent)
	assert.NotNil(t, results[0].Error)

	assert.Equal(t, "bogus", results[1].Target)
	assert.ErrorIs(t, results[1].Error, wol.ErrInvalidFormat)

	assert.Equal(t, "office-pc", results[2].Target)
	assert.True(t, results[2].PacketSent)
	assert.Nil(t, results[2].Error)

	// The malformed address never reached the client.
	assert.Len(t, client.captured, 2)
}

func TestWakeAll_Empty(t *testing.T) {
	svc := NewWithClients(testLogger(), &mockClient{})

	results := svc.WakeAll(context.Background(), nil)
	assert.Empty(t, results)
}
