package wol

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMagicPacket_Layout(t *testing.T) {
	hw := net.HardwareAddr{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB}

	pkt, err := NewMagicPacket(hw)
	require.NoError(t, err)
	require.Len(t, pkt, PacketSize)

	for i := 0; i < 6; i++ {
		assert.Equal(t, byte(0xff), pkt[i], "sync byte %d", i)
	}
	for k := 0; k < 16; k++ {
		start := 6 + 6*k
		assert.Equal(t, []byte(hw), pkt[start:start+6], "repetition %d", k)
	}
}

func TestNewMagicPacket_Deterministic(t *testing.T) {
	hw, err := ParseMAC("e5:c0:7f:91:99:c8")
	require.NoError(t, err)

	first, err := NewMagicPacket(hw)
	require.NoError(t, err)
	second, err := NewMagicPacket(hw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewMagicPacket_RejectsWrongLength(t *testing.T) {
	for _, hw := range []net.HardwareAddr{
		nil,
		{0x01, 0x23, 0x45},
		{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}, // EUI-64
	} {
		pkt, err := NewMagicPacket(hw)
		assert.ErrorIs(t, err, ErrInvalidFormat, "length %d", len(hw))
		assert.Nil(t, pkt)
	}
}
