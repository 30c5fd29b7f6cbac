package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()
	m.CheckIn(CheckInAccepted)
	m.CheckIn(CheckInAccepted)
	m.CheckIn(CheckInOutside)
	m.Reset(true)
	m.Reset(false)
	m.Login(false)
	m.Export()

	if got := testutil.ToFloat64(m.checkIns.WithLabelValues(CheckInAccepted)); got != 2 {
		t.Fatalf("expected 2 accepted check-ins, got %v", got)
	}
	if got := testutil.ToFloat64(m.checkIns.WithLabelValues(CheckInOutside)); got != 1 {
		t.Fatalf("expected 1 rejected check-in, got %v", got)
	}
	if got := testutil.ToFloat64(m.resets.WithLabelValues("ok")); got != 1 {
		t.Fatalf("expected 1 reset, got %v", got)
	}
	// failed resets and failed logins use different label values
	if got := testutil.ToFloat64(m.resets.WithLabelValues("error")); got != 1 {
		t.Fatalf("expected 1 failed reset labelled error, got %v", got)
	}
	if got := testutil.ToFloat64(m.resets.WithLabelValues("failed")); got != 0 {
		t.Fatalf("reset failures must not use the login label, got %v", got)
	}
	if got := testutil.ToFloat64(m.logins.WithLabelValues("failed")); got != 1 {
		t.Fatalf("expected 1 failed login, got %v", got)
	}
	if got := testutil.ToFloat64(m.exports); got != 1 {
		t.Fatalf("expected 1 export, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.CheckIn(CheckInError)
	m.Reset(false)
	m.Login(true)
	m.Export()
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.CheckIn(CheckInAccepted)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(w.Body)
	if !strings.Contains(string(body), `absensi_checkins_total{result="accepted"} 1`) {
		t.Fatalf("expected check-in counter in output, got:\n%s", body)
	}
}
