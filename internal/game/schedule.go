package game

import (
	"time"

	"github.com/samdwyer/memorygame/internal/memory"
)

// scheduler owns the countdown ticker and the single delay timer of one
// event loop. sync must be called before every select so the timers follow
// the session.
type scheduler struct {
	interval time.Duration

	ticker *time.Ticker
	round  int

	timer *time.Timer
	delay memory.Delay
	armed bool
}

func newScheduler(interval time.Duration) *scheduler {
	return &scheduler{interval: interval}
}

// sync starts or stops the ticker and arms the delay timer to match the session.
func (s *scheduler) sync(session *memory.Session) {
	if session.TimerRunning() {
		// A new round restarts the countdown phase from zero.
		if s.ticker == nil || s.round != session.Round() {
			s.stopTicker()
			s.ticker = time.NewTicker(s.interval)
			s.round = session.Round()
		}
	} else {
		s.stopTicker()
	}

	d, ok := session.Pending()
	switch {
	case !ok:
		s.disarm()
	case !s.armed || s.delay.Seq != d.Seq:
		s.disarm()
		s.delay = d
		s.armed = true
		s.timer = time.NewTimer(d.After)
	}
}

// ticks returns the ticker channel, or nil so a select never fires on it.
func (s *scheduler) ticks() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C
}

// fired returns the delay timer channel, or nil.
func (s *scheduler) fired() <-chan time.Time {
	if !s.armed {
		return nil
	}
	return s.timer.C
}

// take returns the delay whose timer fired and disarms it.
func (s *scheduler) take() memory.Delay {
	d := s.delay
	s.armed = false
	s.timer = nil
	return d
}

func (s *scheduler) stop() {
	s.stopTicker()
	s.disarm()
}

func (s *scheduler) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

func (s *scheduler) disarm() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.armed = false
}
