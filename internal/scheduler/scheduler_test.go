package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap/zaptest"

	"github.com/mfarhila/ABSENSI-GURU/internal/platform/metrics"
)

type fakeResetter struct {
	n     int64
	err   error
	block bool
}

func (f *fakeResetter) Reset(ctx context.Context) (int64, error) {
	if f.block {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	return f.n, f.err
}

func TestNewRejectsBadSpec(t *testing.T) {
	for _, spec := range []string{"", "every month", "0 0 32 * *", "* * * * * * *"} {
		if _, err := New(spec, time.UTC, &fakeResetter{}, nil, nil); err == nil {
			t.Fatalf("spec %q: expected error", spec)
		}
	}
	if _, err := New("0 0 1 * *", time.UTC, nil, nil, nil); err == nil {
		t.Fatal("expected error for nil resetter")
	}
}

func TestNextIsFirstOfMonthAtMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	s, err := New("0 0 1 * *", loc, &fakeResetter{}, zaptest.NewLogger(t), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	next := s.Next()
	if next.Day() != 1 || next.Hour() != 0 || next.Minute() != 0 {
		t.Fatalf("unexpected next run %v", next)
	}
	if !next.After(time.Now()) {
		t.Fatalf("next run %v is not in the future", next)
	}
}

func TestRunNowRecordsOutcome(t *testing.T) {
	m := metrics.New()
	job := &fakeResetter{n: 12}
	s, err := New("0 0 1 * *", time.UTC, job, zaptest.NewLogger(t), m)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	n, err := s.RunNow(context.Background())
	if err != nil || n != 12 {
		t.Fatalf("RunNow = %d, %v", n, err)
	}

	job.err = errors.New("deadlock")
	if _, err := s.RunNow(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	const want = `
# HELP absensi_resets_total Monthly attendance resets by outcome.
# TYPE absensi_resets_total counter
absensi_resets_total{result="error"} 1
absensi_resets_total{result="ok"} 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(want), "absensi_resets_total"); err != nil {
		t.Fatal(err)
	}
}

func TestStopCancelsRunningReset(t *testing.T) {
	job := &fakeResetter{block: true}
	s, err := New("* * * * *", time.UTC, job, zaptest.NewLogger(t), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s.Start()
	s.Start()

	done := make(chan error, 1)
	go func() {
		_, err := s.RunNow(s.ctx)
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected cancellation, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("running reset was not cancelled")
	}
}
