package wol

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"
)

const (
	// DefaultBroadcastAddress is the IPv4 limited broadcast address.
	DefaultBroadcastAddress = "255.255.255.255"

	// DefaultPort is the discard port, the canonical Wake-on-LAN target.
	DefaultPort = 9

	// DefaultTimeout bounds each datagram send. UDP sends complete
	// near-instantly; hitting this indicates an unusual condition on
	// the local stack, not protocol behavior.
	DefaultTimeout = 3 * time.Second
)

// ErrClosed is returned by operations on a Sender after Close.
var ErrClosed = errors.New("sender is closed")

// Sender broadcasts magic packets over a single reusable UDP socket.
// Opening a socket per wake is wasteful and can exhaust ephemeral ports
// under high call volume, so a Sender is created once, used for any
// number of wakes, and closed when done.
//
// The zero value is not usable; use NewSender. A Sender is safe for
// concurrent use: UDP sends on one socket are independent system calls
// with no session state. Go's runtime enables SO_BROADCAST on UDP
// sockets, so the socket is broadcast-capable from the start.
type Sender struct {
	conn    *net.UDPConn
	targets []*net.UDPAddr
	timeout time.Duration

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

type options struct {
	broadcast string
	ports     []int
	timeout   time.Duration
}

// Option configures a Sender.
type Option func(*options)

// WithBroadcastAddress sets the destination IPv4 address. Defaults to
// the limited broadcast address 255.255.255.255.
func WithBroadcastAddress(ip string) Option {
	return func(o *options) { o.broadcast = ip }
}

// WithPorts sets the destination UDP ports. Each wake sends one datagram
// per port. Defaults to port 9 only; pass 7 and 9 (or 0, 7 and 9) for
// compatibility with older network interfaces.
func WithPorts(ports ...int) Option {
	return func(o *options) { o.ports = ports }
}

// WithTimeout sets the per-datagram send timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// NewSender opens a broadcast-capable UDP socket and resolves the
// destination endpoints. The caller must Close the Sender when done.
func NewSender(opts ...Option) (*Sender, error) {
	o := options{
		broadcast: DefaultBroadcastAddress,
		ports:     []int{DefaultPort},
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ip := net.ParseIP(o.broadcast)
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("invalid broadcast address: %q", o.broadcast)
	}
	if len(o.ports) == 0 {
		return nil, fmt.Errorf("no destination ports configured")
	}
	for _, p := range o.ports {
		if p < 0 || p > 65535 {
			return nil, fmt.Errorf("invalid destination port: %d", p)
		}
	}
	if o.timeout <= 0 {
		return nil, fmt.Errorf("invalid timeout: %v", o.timeout)
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero})
	if err != nil {
		return nil, fmt.Errorf("opening UDP socket: %w", err)
	}

	targets := make([]*net.UDPAddr, 0, len(o.ports))
	for _, p := range o.ports {
		targets = append(targets, &net.UDPAddr{IP: ip, Port: p})
	}

	return &Sender{conn: conn, targets: targets, timeout: o.timeout}, nil
}

// Wake parses mac, builds its magic packet and sends it to every
// configured endpoint in order. The first socket error aborts the
// remaining endpoints and propagates.
func (s *Sender) Wake(mac string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	hw, err := ParseMAC(mac)
	if err != nil {
		return err
	}
	return s.WakeHardwareAddr(hw)
}

// WakeHardwareAddr is Wake for a pre-parsed hardware address.
func (s *Sender) WakeHardwareAddr(hw net.HardwareAddr) error {
	if s.closed.Load() {
		return ErrClosed
	}
	pkt, err := NewMagicPacket(hw)
	if err != nil {
		return err
	}
	for _, target := range s.targets {
		if err := s.send(target, pkt); err != nil {
			return err
		}
	}
	return nil
}

// WakeAll wakes every address sequentially in input order. The first
// failure aborts the batch; remaining addresses are not attempted. Use
// WakeAllContext when every address should be attempted regardless.
func (s *Sender) WakeAll(macs []string) error {
	for _, mac := range macs {
		if err := s.Wake(mac); err != nil {
			return fmt.Errorf("wake %q: %w", mac, err)
		}
	}
	return nil
}

// WakeContext parses mac, builds its magic packet and sends it to all
// configured endpoints concurrently, waiting for every send to finish.
// Failed endpoints do not stop their siblings; their errors are joined
// into the returned error.
func (s *Sender) WakeContext(ctx context.Context, mac string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	hw, err := ParseMAC(mac)
	if err != nil {
		return err
	}
	return s.WakeHardwareAddrContext(ctx, hw)
}

// WakeHardwareAddrContext is WakeContext for a pre-parsed hardware
// address.
func (s *Sender) WakeHardwareAddrContext(ctx context.Context, hw net.HardwareAddr) error {
	if s.closed.Load() {
		return ErrClosed
	}
	pkt, err := NewMagicPacket(hw)
	if err != nil {
		return err
	}

	p := pool.New().WithErrors()
	for _, target := range s.targets {
		target := target
		p.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.send(target, pkt)
		})
	}
	return p.Wait()
}

// WakeAllContext wakes every address concurrently. Unlike WakeAll, every
// address is attempted; the joined errors of all failed addresses are
// returned once all sends have completed.
func (s *Sender) WakeAllContext(ctx context.Context, macs []string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	p := pool.New().WithErrors()
	for _, mac := range macs {
		mac := mac
		p.Go(func() error {
			if err := s.WakeContext(ctx, mac); err != nil {
				return fmt.Errorf("wake %q: %w", mac, err)
			}
			return nil
		})
	}
	return p.Wait()
}

// send transmits one datagram under the configured write deadline.
func (s *Sender) send(target *net.UDPAddr, pkt []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
		if s.closed.Load() {
			return ErrClosed
		}
		return fmt.Errorf("send to %s: %w", target, err)
	}
	n, err := s.conn.WriteToUDP(pkt, target)
	if err != nil {
		if s.closed.Load() {
			return ErrClosed
		}
		return fmt.Errorf("send to %s: %w", target, err)
	}
	if n != len(pkt) {
		return fmt.Errorf("send to %s: short write, %d of %d bytes", target, n, len(pkt))
	}
	return nil
}

// Close releases the socket. Safe to call more than once; all wake
// operations after the first Close fail with ErrClosed.
func (s *Sender) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}
