package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Check-in outcomes.
const (
	CheckInAccepted = "accepted"
	CheckInOutside  = "rejected_range"
	CheckInInvalid  = "invalid"
	CheckInError    = "error"
)

// Metrics holds the application counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	reg      *prometheus.Registry
	checkIns *prometheus.CounterVec
	resets   *prometheus.CounterVec
	exports  prometheus.Counter
	logins   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "absensi_checkins_total",
			Help: "Check-in attempts by outcome.",
		}, []string{"result"}),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "absensi_resets_total",
			Help: "Monthly attendance resets by outcome.",
		}, []string{"result"}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "absensi_exports_total",
			Help: "Spreadsheet exports served.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "absensi_login_total",
			Help: "Login attempts by outcome.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.checkIns, m.resets, m.exports, m.logins,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) CheckIn(result string) {
	if m == nil {
		return
	}
	m.checkIns.WithLabelValues(result).Inc()
}

func (m *Metrics) Reset(ok bool) {
	if m == nil {
		return
	}
	m.resets.WithLabelValues(resetOutcome(ok)).Inc()
}

func (m *Metrics) Export() {
	if m == nil {
		return
	}
	m.exports.Inc()
}

func (m *Metrics) Login(ok bool) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(loginOutcome(ok)).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func resetOutcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

func loginOutcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
