package report

import (
	"math"
	"math/big"
	"time"

	"github.com/wellsgz/pingpong/internal/stats"
)

// historyLength is how many recent pings a snapshot carries for sparklines
const historyLength = 120

// Snapshot is the set of figures shown on one render. All millisecond
// values are already rounded for display.
type Snapshot struct {
	Timestamp   time.Time `json:"timestamp"`
	PingMs      int64     `json:"ping_ms"`
	HasPing     bool      `json:"has_ping"`
	AvgPingMs   int64     `json:"avg_ping_ms"`
	JitterMs    int64     `json:"jitter_ms"`
	HasJitter   bool      `json:"has_jitter"`
	AvgJitterMs int64     `json:"avg_jitter_ms"`
	PacketLoss  float64   `json:"packet_loss"`
	Attempts    uint64    `json:"attempts"`
	Successes   uint64    `json:"successes"`
	PingHistory []float64 `json:"ping_history,omitempty"`
}

// TakeSnapshot computes display figures from the store
func TakeSnapshot(store *stats.Store, now time.Time) Snapshot {
	snap := Snapshot{
		Timestamp:   now,
		AvgPingMs:   RoundHalfUp(stats.Average(store.Ping())),
		AvgJitterMs: RoundHalfUp(stats.Average(store.Jitter())),
		PacketLoss:  store.PacketLoss(),
		Attempts:    store.Attempts(),
		Successes:   store.Successes(),
	}

	if d, ok := stats.Latest(store.Ping()); ok {
		snap.PingMs = stats.Milliseconds(d)
		snap.HasPing = true
	}
	if d, ok := stats.Latest(store.Jitter()); ok {
		snap.JitterMs = stats.Milliseconds(d)
		snap.HasJitter = true
	}

	recent := store.Ping().Last(historyLength)
	snap.PingHistory = make([]float64, len(recent))
	for i, d := range recent {
		snap.PingHistory[i] = float64(stats.Milliseconds(d))
	}

	return snap
}

// RoundHalfUp rounds to the nearest integer with halves going up
func RoundHalfUp(x float64) int64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return int64(r)
}

// FormatPercent renders a non-negative percentage with exactly two decimals,
// rounding halves up on the exact binary value.
func FormatPercent(pct float64) string {
	if pct < 0 || math.IsNaN(pct) || math.IsInf(pct, 0) {
		pct = 0
	}

	f := new(big.Float).SetPrec(256).SetFloat64(pct)
	f.Mul(f, big.NewFloat(100))
	f.Add(f, big.NewFloat(0.5))
	hundredths, _ := f.Int(nil)

	whole, frac := new(big.Int).QuoRem(hundredths, big.NewInt(100), new(big.Int))
	digits := frac.String()
	if len(digits) < 2 {
		digits = "0" + digits
	}
	return whole.String() + "." + digits
}
