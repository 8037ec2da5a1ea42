package probe

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync/atomic"
	"time"
)

// ErrTimeout is reported when neither connect nor error happened within the
// probe timeout.
var ErrTimeout = errors.New("probe timed out")

// Kind identifies which terminal event ended an attempt
type Kind int32

const (
	pending Kind = iota
	Connected
	Errored
	TimedOut
)

// String returns a short name for the outcome kind
func (k Kind) String() string {
	switch k {
	case Connected:
		return "connected"
	case Errored:
		return "errored"
	case TimedOut:
		return "timed_out"
	default:
		return "pending"
	}
}

// Outcome is the single result of one probe attempt
type Outcome struct {
	Kind      Kind          `json:"kind"`
	Elapsed   time.Duration `json:"elapsed"` // zero unless Connected
	Err       error         `json:"-"`
	Started   time.Time     `json:"started"`
	Completed time.Time     `json:"completed"`
}

// Success reports whether the connection was established before the timeout
func (o Outcome) Success() bool {
	return o.Kind == Connected
}

// Probe defines the interface for probe implementations
type Probe interface {
	// Target returns the host:port being probed
	Target() string

	// Type returns the probe type
	Type() string

	// Start launches one attempt. The returned channel yields exactly one
	// Outcome and is then closed.
	Start(ctx context.Context) <-chan Outcome
}

// Dialer opens network connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// BaseProbe provides common fields for probe implementations
type BaseProbe struct {
	Address string
	Port    int
	Timeout time.Duration
}

// Target returns the address joined with the port
func (b *BaseProbe) Target() string {
	return net.JoinHostPort(b.Address, strconv.Itoa(b.Port))
}

// slot is a single-assignment outcome kind. The first claim wins and every
// later claim is ignored.
type slot struct {
	kind atomic.Int32
}

func (s *slot) claim(k Kind) bool {
	return s.kind.CompareAndSwap(int32(pending), int32(k))
}

func (s *slot) get() Kind {
	return Kind(s.kind.Load())
}
