package pinchzoom

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

type progressRecorder struct {
	values    []float64
	completed int
}

func (r *progressRecorder) job(duration float64) AnimationJob {
	return AnimationJob{
		Duration:   duration,
		Progress:   func(p float64) { r.values = append(r.values, p) },
		OnComplete: func() { r.completed++ },
	}
}

func (r *progressRecorder) last() float64 {
	if len(r.values) == 0 {
		return math.NaN()
	}
	return r.values[len(r.values)-1]
}

func TestSchedulerRunsToCompletion(t *testing.T) {
	clock := &ManualClock{}
	s := NewScheduler(clock)
	var rec progressRecorder
	s.Start(rec.job(300))

	if !s.Active() {
		t.Fatal("scheduler should be active after Start")
	}
	if !s.Tick(clock.Advance(150)) {
		t.Fatal("Tick mid-animation should report work")
	}
	if !approxEqual(rec.last(), 0.5, 1e-6) {
		t.Errorf("progress at half time = %v, want 0.5", rec.last())
	}
	if rec.completed != 0 {
		t.Errorf("completed early: %d", rec.completed)
	}

	s.Tick(clock.Advance(150))
	if rec.last() != 1 {
		t.Errorf("final progress = %v, want exactly 1", rec.last())
	}
	if rec.completed != 1 {
		t.Errorf("completed = %d, want 1", rec.completed)
	}
	if s.Active() {
		t.Error("scheduler should be idle after completion")
	}

	if s.Tick(clock.Advance(100)) {
		t.Error("Tick after completion should report no work")
	}
	if rec.completed != 1 {
		t.Errorf("OnComplete ran %d times, want 1", rec.completed)
	}
}

func TestSchedulerProgressMonotonic(t *testing.T) {
	clock := &ManualClock{}
	s := NewScheduler(clock)
	var rec progressRecorder
	s.Start(rec.job(300))
	for s.Active() {
		s.Tick(clock.Advance(16))
	}
	for i := 1; i < len(rec.values); i++ {
		if rec.values[i] < rec.values[i-1] {
			t.Fatalf("progress decreased at %d: %v -> %v", i, rec.values[i-1], rec.values[i])
		}
	}
	if rec.values[0] < 0 || rec.last() != 1 {
		t.Errorf("progress range = [%v, %v], want [>=0, 1]", rec.values[0], rec.last())
	}
}

func TestSchedulerCancel(t *testing.T) {
	clock := &ManualClock{}
	s := NewScheduler(clock)
	var rec progressRecorder
	s.Start(rec.job(300))
	s.Tick(clock.Advance(100))

	if !s.Cancel() {
		t.Fatal("Cancel should report a running job")
	}
	if s.Cancel() {
		t.Error("second Cancel should report nothing to cancel")
	}
	n := len(rec.values)
	s.Tick(clock.Advance(500))
	if len(rec.values) != n {
		t.Error("cancelled job received progress")
	}
	if rec.completed != 0 {
		t.Error("cancelled job completed")
	}
}

func TestSchedulerStartReplaces(t *testing.T) {
	clock := &ManualClock{}
	s := NewScheduler(clock)
	var first, second progressRecorder
	s.Start(first.job(300))
	s.Tick(clock.Advance(100))
	s.Start(second.job(300))

	for s.Active() {
		s.Tick(clock.Advance(50))
	}
	if first.completed != 0 {
		t.Error("replaced job completed")
	}
	if second.completed != 1 {
		t.Errorf("second job completed %d times, want 1", second.completed)
	}
}

func TestSchedulerZeroDuration(t *testing.T) {
	clock := &ManualClock{}
	s := NewScheduler(clock)
	var rec progressRecorder
	s.Start(rec.job(0))
	s.Tick(clock.Now())
	if len(rec.values) != 1 || rec.values[0] != 1 {
		t.Errorf("progress = %v, want [1]", rec.values)
	}
	if rec.completed != 1 {
		t.Errorf("completed = %d, want 1", rec.completed)
	}
}

func TestSchedulerTickBeforeStart(t *testing.T) {
	clock := &ManualClock{}
	clock.Set(1000)
	s := NewScheduler(clock)
	var rec progressRecorder
	s.Start(rec.job(300))
	s.Tick(900)
	if rec.last() != 0 {
		t.Errorf("progress before start = %v, want 0", rec.last())
	}
}

func TestSchedulerStartFromOnComplete(t *testing.T) {
	clock := &ManualClock{}
	s := NewScheduler(clock)
	var chained progressRecorder
	s.Start(AnimationJob{
		Duration: 100,
		Progress: func(float64) {},
		OnComplete: func() {
			s.Start(chained.job(100))
		},
	})
	s.Tick(clock.Advance(100))
	if !s.Active() {
		t.Fatal("job started from OnComplete was dropped")
	}
	s.Tick(clock.Advance(100))
	if chained.completed != 1 {
		t.Errorf("chained job completed %d times, want 1", chained.completed)
	}
}

func TestSchedulerCustomEasing(t *testing.T) {
	clock := &ManualClock{}
	s := NewScheduler(clock)
	var rec progressRecorder
	job := rec.job(100)
	job.Easing = ease.Linear
	s.Start(job)
	s.Tick(clock.Advance(25))
	if !approxEqual(rec.last(), 0.25, 1e-6) {
		t.Errorf("linear progress = %v, want 0.25", rec.last())
	}
}

func TestSchedulerFinalFrameUsesEasing(t *testing.T) {
	clock := &ManualClock{}
	s := NewScheduler(clock)
	var rec progressRecorder
	job := rec.job(100)
	// Stops halfway: the final frame must report the curve's endpoint.
	job.Easing = func(x, b, c, d float32) float32 { return b + c*x/d/2 }
	s.Start(job)
	s.Tick(clock.Advance(50))
	if !approxEqual(rec.last(), 0.25, 1e-6) {
		t.Errorf("mid progress = %v, want 0.25", rec.last())
	}
	s.Tick(clock.Advance(50))
	if !approxEqual(rec.last(), 0.5, 1e-6) {
		t.Errorf("final progress = %v, want 0.5", rec.last())
	}
	if rec.completed != 1 {
		t.Errorf("completed = %d, want 1", rec.completed)
	}
}

func TestSwingCurve(t *testing.T) {
	tests := []struct {
		p, want float64
	}{
		{0, 0},
		{0.25, (1 - math.Cos(0.25*math.Pi)) / 2},
		{0.5, 0.5},
		{1, 1},
	}
	for _, tt := range tests {
		got := float64(Swing(float32(tt.p), 0, 1, 1))
		if !approxEqual(got, tt.want, 1e-6) {
			t.Errorf("Swing(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
