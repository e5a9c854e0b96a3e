package wol

import (
	"fmt"
	"net"
)

const (
	macLen    = 6
	syncLen   = 6  // leading 0xFF bytes
	macRepeat = 16 // repetitions of the target address

	// PacketSize is the exact size of a magic packet datagram.
	PacketSize = syncLen + macRepeat*macLen // 102
)

// NewMagicPacket builds the magic packet for hw: six 0xFF bytes followed
// by the address repeated sixteen times. The length check is enforced
// here independently of ParseMAC so the builder is safe to call with
// addresses from other sources, e.g. the 8-byte form net.ParseMAC can
// return.
func NewMagicPacket(hw net.HardwareAddr) ([]byte, error) {
	if len(hw) != macLen {
		return nil, fmt.Errorf("%w: hardware address must be %d bytes, got %d", ErrInvalidFormat, macLen, len(hw))
	}

	pkt := make([]byte, 0, PacketSize)
	pkt = append(pkt, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)
	for i := 0; i < macRepeat; i++ {
		pkt = append(pkt, hw...)
	}
	return pkt, nil
}
