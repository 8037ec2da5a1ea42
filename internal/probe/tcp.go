package probe

import (
	"context"
	"net"
	"time"
)

// TCPProbe measures how long it takes to establish a TCP connection.
// Nothing is ever written to or read from the connection.
type TCPProbe struct {
	BaseProbe
	dialer Dialer
	now    func() time.Time
}

// NewTCPProbe creates a new TCP probe for the given address and port
func NewTCPProbe(address string, port int, timeout time.Duration) *TCPProbe {
	return &TCPProbe{
		BaseProbe: BaseProbe{
			Address: address,
			Port:    port,
			Timeout: timeout,
		},
		dialer: &net.Dialer{},
		now:    time.Now,
	}
}

// WithDialer replaces the dialer used for connection attempts
func (p *TCPProbe) WithDialer(d Dialer) *TCPProbe {
	p.dialer = d
	return p
}

// Type returns "tcp"
func (p *TCPProbe) Type() string {
	return "tcp"
}

// Attempt runs one probe and waits for its outcome
func (p *TCPProbe) Attempt(ctx context.Context) Outcome {
	return <-p.Start(ctx)
}

// Start launches one connection attempt. Connect, error and timeout race for
// the outcome; whichever happens first decides it. A timeout cancels the
// dial, and any connection that does get established is closed before the
// outcome is published.
func (p *TCPProbe) Start(ctx context.Context) <-chan Outcome {
	out := make(chan Outcome, 1)
	result := &slot{}

	dialCtx, cancel := context.WithCancel(ctx)
	started := p.now()

	timer := time.AfterFunc(p.Timeout, func() {
		if result.claim(TimedOut) {
			cancel()
		}
	})

	go func() {
		defer close(out)
		defer cancel()

		conn, err := p.dialer.DialContext(dialCtx, "tcp", p.Target())
		completed := p.now()
		timer.Stop()

		if err == nil {
			result.claim(Connected)
			conn.Close()
		} else {
			result.claim(Errored)
		}

		outcome := Outcome{
			Kind:      result.get(),
			Started:   started,
			Completed: completed,
		}
		switch outcome.Kind {
		case Connected:
			outcome.Elapsed = completed.Sub(started)
		case TimedOut:
			outcome.Err = ErrTimeout
		default:
			outcome.Err = err
		}
		out <- outcome
	}()

	return out
}
