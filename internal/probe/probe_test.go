package probe

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

// countingConn records how many times Close was called
type countingConn struct {
	net.Conn
	closes atomic.Int32
}

func (c *countingConn) Close() error {
	c.closes.Add(1)
	return nil
}

// slowDialer ignores cancellation and connects after delay
type slowDialer struct {
	delay time.Duration
	conn  *countingConn
}

func (d *slowDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	time.Sleep(d.delay)
	return d.conn, nil
}

// blockingDialer waits until its context is cancelled
type blockingDialer struct{}

func (blockingDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type errDialer struct {
	err error
}

func (d errDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	return nil, d.err
}

func listen(t *testing.T) (string, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Connected, "connected"},
		{Errored, "errored"},
		{TimedOut, "timed_out"},
		{pending, "pending"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestTarget(t *testing.T) {
	tests := []struct {
		name    string
		address string
		port    int
		want    string
	}{
		{"hostname", "example.com", 80, "example.com:80"},
		{"ipv4", "1.1.1.1", 443, "1.1.1.1:443"},
		{"ipv6", "::1", 8080, "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewTCPProbe(tt.address, tt.port, time.Second)
			if got := p.Target(); got != tt.want {
				t.Errorf("Target() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTCPProbeConnected(t *testing.T) {
	host, port := listen(t)
	p := NewTCPProbe(host, port, time.Second)

	outcome := p.Attempt(context.Background())
	if outcome.Kind != Connected {
		t.Fatalf("Attempt() Kind = %v, want connected (err %v)", outcome.Kind, outcome.Err)
	}
	if !outcome.Success() {
		t.Error("Attempt() Success should be true")
	}
	if outcome.Elapsed < 0 {
		t.Errorf("Attempt() Elapsed = %v, want non-negative", outcome.Elapsed)
	}
	if outcome.Elapsed != outcome.Completed.Sub(outcome.Started) {
		t.Errorf("Attempt() Elapsed = %v, want Completed-Started %v", outcome.Elapsed, outcome.Completed.Sub(outcome.Started))
	}
}

func TestTCPProbeRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	p := NewTCPProbe("127.0.0.1", port, time.Second)
	outcome := p.Attempt(context.Background())
	if outcome.Kind != Errored {
		t.Fatalf("Attempt() Kind = %v, want errored", outcome.Kind)
	}
	if outcome.Success() {
		t.Error("Attempt() Success should be false")
	}
	if outcome.Elapsed != 0 {
		t.Errorf("Attempt() Elapsed = %v, want 0 for failure", outcome.Elapsed)
	}
	if outcome.Err == nil {
		t.Error("Attempt() Err should be set for a refused connection")
	}
}

func TestTCPProbeDialError(t *testing.T) {
	dialErr := errors.New("no such host")
	p := NewTCPProbe("invalid.example", 80, time.Second).WithDialer(errDialer{err: dialErr})

	outcome := p.Attempt(context.Background())
	if outcome.Kind != Errored {
		t.Fatalf("Attempt() Kind = %v, want errored", outcome.Kind)
	}
	if !errors.Is(outcome.Err, dialErr) {
		t.Errorf("Attempt() Err = %v, want %v", outcome.Err, dialErr)
	}
}

func TestTCPProbeTimeoutCancelsDial(t *testing.T) {
	p := NewTCPProbe("10.255.255.1", 80, 20*time.Millisecond).WithDialer(blockingDialer{})

	start := time.Now()
	outcome := p.Attempt(context.Background())
	if outcome.Kind != TimedOut {
		t.Fatalf("Attempt() Kind = %v, want timed_out", outcome.Kind)
	}
	if !errors.Is(outcome.Err, ErrTimeout) {
		t.Errorf("Attempt() Err = %v, want ErrTimeout", outcome.Err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Attempt() took %v, timeout should have cancelled the dial", elapsed)
	}
}

func TestTCPProbeLateConnectAfterTimeout(t *testing.T) {
	conn := &countingConn{}
	p := NewTCPProbe("192.0.2.1", 80, 10*time.Millisecond).
		WithDialer(&slowDialer{delay: 50 * time.Millisecond, conn: conn})

	ch := p.Start(context.Background())

	outcome, ok := <-ch
	if !ok {
		t.Fatal("Start() channel closed without an outcome")
	}
	if outcome.Kind != TimedOut {
		t.Errorf("Start() Kind = %v, want timed_out", outcome.Kind)
	}
	if outcome.Elapsed != 0 {
		t.Errorf("Start() Elapsed = %v, want 0", outcome.Elapsed)
	}
	if got := conn.closes.Load(); got != 1 {
		t.Errorf("connection closed %d times, want 1", got)
	}

	if extra, ok := <-ch; ok {
		t.Errorf("Start() reported a second outcome: %v", extra.Kind)
	}
}

func TestTCPProbeClosesConnectionOnce(t *testing.T) {
	conn := &countingConn{}
	p := NewTCPProbe("192.0.2.1", 80, time.Second).
		WithDialer(&slowDialer{conn: conn})

	outcome := p.Attempt(context.Background())
	if outcome.Kind != Connected {
		t.Fatalf("Attempt() Kind = %v, want connected", outcome.Kind)
	}
	if got := conn.closes.Load(); got != 1 {
		t.Errorf("connection closed %d times, want 1", got)
	}
}

func TestTCPProbeRepeatedAttempts(t *testing.T) {
	host, port := listen(t)
	p := NewTCPProbe(host, port, time.Second)

	for i := 0; i < 10; i++ {
		if outcome := p.Attempt(context.Background()); !outcome.Success() {
			t.Fatalf("attempt %d: Kind = %v, err %v", i, outcome.Kind, outcome.Err)
		}
	}
}

func TestTCPProbeType(t *testing.T) {
	p := NewTCPProbe("localhost", 80, time.Second)
	if p.Type() != "tcp" {
		t.Errorf("Type() = %q, want tcp", p.Type())
	}
	if p.Target() != net.JoinHostPort("localhost", strconv.Itoa(80)) {
		t.Errorf("Target() = %q", p.Target())
	}
}
