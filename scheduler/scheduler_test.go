package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAnnouncer captures delivered messages and can fail selected sends
type recordingAnnouncer struct {
	mu       sync.Mutex
	messages []string
	failWhen func(content string) bool
}

func (a *recordingAnnouncer) Send(ctx context.Context, content string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, content)
	if a.failWhen != nil && a.failWhen(content) {
		return assert.AnError
	}
	return nil
}

func (a *recordingAnnouncer) sent() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

func testPlan(t *testing.T, start time.Time) *Plan {
	t.Helper()
	plan, err := NewPlan("event-1", "Game Night", "Bring snacks",
		"https://example.com/events/1", "chan-1", "", start, mapRoleDirectory{})
	require.NoError(t, err)
	return plan
}

func TestScheduler_FireOffsetsDropsPastTimes(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	s := New([]time.Duration{60 * time.Minute, 30 * time.Minute, 0}, &recordingAnnouncer{})

	t.Run("all future", func(t *testing.T) {
		plan := testPlan(t, now.Add(2*time.Hour))
		assert.Equal(t, []time.Duration{60 * time.Minute, 30 * time.Minute, 0}, s.FireOffsets(plan, now))
	})

	t.Run("some already past", func(t *testing.T) {
		// 45 minutes out: the 60-minute reminder window has already passed
		plan := testPlan(t, now.Add(45*time.Minute))
		assert.Equal(t, []time.Duration{30 * time.Minute, 0}, s.FireOffsets(plan, now))
	})

	t.Run("event already started", func(t *testing.T) {
		plan := testPlan(t, now.Add(-time.Minute))
		assert.Empty(t, s.FireOffsets(plan, now))
	})

	t.Run("fire time exactly now is kept", func(t *testing.T) {
		plan := testPlan(t, now.Add(30*time.Minute))
		assert.Equal(t, []time.Duration{30 * time.Minute, 0}, s.FireOffsets(plan, now))
	})
}

func TestScheduler_ScheduleFiresEveryOffset(t *testing.T) {
	announcer := &recordingAnnouncer{}
	s := New([]time.Duration{40 * time.Millisecond, 20 * time.Millisecond, 0}, announcer)

	plan := testPlan(t, time.Now().Add(60*time.Millisecond))
	s.Schedule(context.Background(), plan)

	messages := announcer.sent()
	require.Len(t, messages, 3)
	for _, message := range messages {
		assert.Contains(t, message, "Game Night")
	}

	// Schedule blocks until every timer has fired, then drops the plan
	assert.Zero(t, s.Active())
}

func TestScheduler_FailedDeliveryDoesNotBlockSiblings(t *testing.T) {
	announcer := &recordingAnnouncer{
		failWhen: func(content string) bool { return true },
	}
	s := New([]time.Duration{20 * time.Millisecond, 0}, announcer)

	plan := testPlan(t, time.Now().Add(40*time.Millisecond))
	s.Schedule(context.Background(), plan)

	// Both deliveries were attempted despite every send failing
	assert.Len(t, announcer.sent(), 2)
}

func TestScheduler_SchedulePastEventIsANoOp(t *testing.T) {
	announcer := &recordingAnnouncer{}
	s := New([]time.Duration{10 * time.Millisecond}, announcer)

	plan := testPlan(t, time.Now().Add(-time.Hour))
	s.Schedule(context.Background(), plan)

	assert.Empty(t, announcer.sent())
}

func TestScheduler_CancellationStopsTimers(t *testing.T) {
	announcer := &recordingAnnouncer{}
	s := New([]time.Duration{0}, announcer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := testPlan(t, time.Now().Add(time.Hour))
	done := make(chan struct{})
	go func() {
		s.Schedule(ctx, plan)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Schedule did not return after cancellation")
	}
	assert.Empty(t, announcer.sent())
}

func TestScheduler_ActiveTracksArmedPlans(t *testing.T) {
	announcer := &recordingAnnouncer{}
	s := New([]time.Duration{0}, announcer)

	plan := testPlan(t, time.Now().Add(50*time.Millisecond))
	done := make(chan struct{})
	go func() {
		s.Schedule(context.Background(), plan)
		close(done)
	}()

	// The plan registers before its timers fire
	assert.Eventually(t, func() bool { return s.Active() == 1 }, time.Second, 5*time.Millisecond)

	<-done
	assert.Zero(t, s.Active())
}
