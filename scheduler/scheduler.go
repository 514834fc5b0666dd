package scheduler

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Announcer delivers a rendered announcement to the updates channel. A failed
// send is logged by the scheduler and never retried.
type Announcer interface {
	Send(ctx context.Context, content string) error
}

// Scheduler arms reminder timers for scheduled events. Each plan gets one
// independent timer per still-future fire time; timers fire concurrently and
// a failed delivery never blocks a sibling.
type Scheduler struct {
	offsets   []time.Duration
	announcer Announcer
	now       func() time.Time

	mu    sync.Mutex
	plans map[string]*Plan
}

// New creates a scheduler that reminds at the given offsets before each
// event's start time
func New(offsets []time.Duration, announcer Announcer) *Scheduler {
	return &Scheduler{
		offsets:   offsets,
		announcer: announcer,
		now:       time.Now,
		plans:     make(map[string]*Plan),
	}
}

// FireOffsets returns the configured offsets whose fire times are still in
// the future at now. Past offsets are dropped permanently; there is no
// catch-up firing.
func (s *Scheduler) FireOffsets(plan *Plan, now time.Time) []time.Duration {
	var armed []time.Duration
	for _, offset := range s.offsets {
		fireTime := plan.StartTime.Add(-offset)
		if !fireTime.Before(now) {
			armed = append(armed, offset)
		}
	}
	return armed
}

// Schedule arms one timer per still-future fire time and blocks until every
// armed timer has fired (or the context is cancelled). Callers that should
// not block run it in a goroutine.
func (s *Scheduler) Schedule(ctx context.Context, plan *Plan) {
	now := s.now()
	offsets := s.FireOffsets(plan, now)
	if len(offsets) == 0 {
		log.Debugf("No future reminders for event %q (started %s ago)", plan.Name, now.Sub(plan.StartTime))
		return
	}

	s.register(plan)
	defer s.unregister(plan)

	log.Infof("Arming %d reminder(s) for event %q starting at %s", len(offsets), plan.Name, plan.StartTime)

	var wg sync.WaitGroup
	for _, offset := range offsets {
		wg.Add(1)
		go func(offset time.Duration) {
			defer wg.Done()
			s.fireAt(ctx, plan, offset)
		}(offset)
	}
	wg.Wait()
}

// Active returns the number of plans with armed timers
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.plans)
}

func (s *Scheduler) register(plan *Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.EventID] = plan
}

func (s *Scheduler) unregister(plan *Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plans, plan.EventID)
}

// fireAt sleeps until the plan's fire time for offset, then delivers the
// reminder. Delivery failures are logged here and do not propagate.
func (s *Scheduler) fireAt(ctx context.Context, plan *Plan, offset time.Duration) {
	fireTime := plan.StartTime.Add(-offset)

	timer := time.NewTimer(fireTime.Sub(s.now()))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	message := plan.ReminderMessage(offset)
	log.Debugf("Sending reminder for event %q (%s before start)", plan.Name, offset)

	if err := s.announcer.Send(ctx, message); err != nil {
		log.Errorf("Failed to send reminder for event %q: %v", plan.Name, err)
	}
}
