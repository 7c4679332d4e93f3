package telemetry

import (
	"testing"
	"time"
)

func TestScope_TracksElapsedAndPeak(t *testing.T) {
	s := NewScope()
	time.Sleep(time.Millisecond)
	s.Sample()

	if s.Elapsed() <= 0 {
		t.Errorf("expected positive elapsed time")
	}
	if s.PeakBytes() == 0 {
		t.Errorf("expected a non-zero heap sample")
	}
}

func TestExporter_ObserveDoesNotPanic(t *testing.T) {
	e := NewExporter()
	e.Observe(5*time.Millisecond, 1<<20, 100, true)
	e.Observe(2*time.Millisecond, 1<<18, 50, false)
}
