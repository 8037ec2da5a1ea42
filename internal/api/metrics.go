package api

import (
	"net"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/wellsgz/pingpong/internal/config"
)

const prefix = "pingpong_"

var (
	labelNames    = []string{"target"}
	pingDesc      = prometheus.NewDesc(prefix+"ping_ms", "TCP connect time in millis", append(labelNames, "type"), nil)
	jitterDesc    = prometheus.NewDesc(prefix+"jitter_ms", "Time between successive probe completions in millis", append(labelNames, "type"), nil)
	lossDesc      = prometheus.NewDesc(prefix+"packet_loss_percent", "Failed connect attempts in percent", labelNames, nil)
	attemptsDesc  = prometheus.NewDesc(prefix+"attempts_total", "Connect attempts launched", labelNames, nil)
	successesDesc = prometheus.NewDesc(prefix+"successes_total", "Connect attempts that connected", labelNames, nil)
)

// snapshotCollector exports the hub's latest snapshot
type snapshotCollector struct {
	hub    *Hub
	target string
}

// NewSnapshotCollector creates a Prometheus collector reading from hub
func NewSnapshotCollector(hub *Hub, target config.TargetConfig) prometheus.Collector {
	return &snapshotCollector{hub: hub, target: targetString(target)}
}

func (s *snapshotCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- pingDesc
	ch <- jitterDesc
	ch <- lossDesc
	ch <- attemptsDesc
	ch <- successesDesc
}

func (s *snapshotCollector) Collect(ch chan<- prometheus.Metric) {
	snap, ok := s.hub.Latest()
	if !ok {
		return
	}

	if snap.HasPing {
		ch <- prometheus.MustNewConstMetric(pingDesc, prometheus.GaugeValue, float64(snap.PingMs), s.target, "realtime")
	}
	ch <- prometheus.MustNewConstMetric(pingDesc, prometheus.GaugeValue, float64(snap.AvgPingMs), s.target, "average")
	if snap.HasJitter {
		ch <- prometheus.MustNewConstMetric(jitterDesc, prometheus.GaugeValue, float64(snap.JitterMs), s.target, "realtime")
	}
	ch <- prometheus.MustNewConstMetric(jitterDesc, prometheus.GaugeValue, float64(snap.AvgJitterMs), s.target, "average")
	ch <- prometheus.MustNewConstMetric(lossDesc, prometheus.GaugeValue, snap.PacketLoss, s.target)
	ch <- prometheus.MustNewConstMetric(attemptsDesc, prometheus.CounterValue, float64(snap.Attempts), s.target)
	ch <- prometheus.MustNewConstMetric(successesDesc, prometheus.CounterValue, float64(snap.Successes), s.target)
}

func targetString(t config.TargetConfig) string {
	return net.JoinHostPort(t.Address, strconv.Itoa(t.Port))
}
