package pinchzoom

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Swing is the ease-in-ease-out curve (1 - cos(p*pi)) / 2 used by every
// programmatic animation.
var Swing ease.TweenFunc = ease.InOutSine

// AnimationJob describes one programmatic animation.
type AnimationJob struct {
	// Duration is the animation length in milliseconds.
	Duration float64
	// Progress receives the eased progress in [0, 1] on every tick.
	Progress func(p float64)
	// Easing shapes linear progress. Nil means Swing.
	Easing ease.TweenFunc
	// OnComplete, if set, runs after the final Progress call, which receives
	// the easing evaluated at 1. It is not called for cancelled jobs.
	OnComplete func()
}

// Scheduler drives at most one AnimationJob from an external frame clock.
// Starting a job cancels the running one. Ticks never block.
type Scheduler struct {
	clock  Clock
	job    AnimationJob
	tween  *gween.Tween
	easing ease.TweenFunc
	start  float64
	active bool
}

// NewScheduler creates an idle scheduler reading start times from clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// Start cancels any running job and begins job at clock.Now().
func (s *Scheduler) Start(job AnimationJob) {
	s.Cancel()
	easing := job.Easing
	if easing == nil {
		easing = Swing
	}
	s.job = job
	s.easing = easing
	s.tween = gween.New(0, 1, float32(job.Duration), easing)
	s.start = s.clock.Now()
	s.active = true
}

// Cancel stops the running job without calling Progress or OnComplete.
// Reports whether a job was running.
func (s *Scheduler) Cancel() bool {
	if !s.active {
		return false
	}
	s.active = false
	s.job = AnimationJob{}
	s.tween = nil
	s.easing = nil
	return true
}

// Active reports whether a job is running.
func (s *Scheduler) Active() bool {
	return s.active
}

// Tick advances the running job to now. It reports whether Progress was
// called, i.e. whether the job did any work this tick.
func (s *Scheduler) Tick(now float64) bool {
	if !s.active {
		return false
	}
	elapsed := now - s.start
	if elapsed < s.job.Duration {
		if elapsed < 0 {
			elapsed = 0
		}
		p, _ := s.tween.Set(float32(elapsed))
		s.job.Progress(float64(p))
		return true
	}

	// Clear the slot before OnComplete so a job started from the callback
	// survives.
	job, easing := s.job, s.easing
	s.active = false
	s.job = AnimationJob{}
	s.tween = nil
	s.easing = nil
	job.Progress(float64(easing(1, 0, 1, 1)))
	if job.OnComplete != nil {
		job.OnComplete()
	}
	return true
}
