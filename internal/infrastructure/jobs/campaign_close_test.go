package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type announcerStub struct {
	mu      sync.Mutex
	results []int
	err     error
	calls   int
	limits  []int
}

func (s *announcerStub) AnnounceClosed(_ context.Context, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.limits = append(s.limits, limit)
	if s.err != nil {
		return 0, s.err
	}
	if len(s.results) == 0 {
		return 0, nil
	}
	n := s.results[0]
	s.results = s.results[1:]
	return n, nil
}

func (s *announcerStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestAnnounceClosed_NothingDue(t *testing.T) {
	stub := &announcerStub{}
	job := NewCampaignCloseJob(stub, time.Millisecond)

	job.announceClosed(context.Background())
	require.Equal(t, 1, stub.calls)
	require.Equal(t, []int{closeBatchSize}, stub.limits)
}

func TestAnnounceClosed_DrainsFullBatches(t *testing.T) {
	stub := &announcerStub{results: []int{closeBatchSize, closeBatchSize, 3}}
	job := NewCampaignCloseJob(stub, time.Millisecond)

	job.announceClosed(context.Background())
	require.Equal(t, 3, stub.calls)
}

func TestAnnounceClosed_StopsOnError(t *testing.T) {
	stub := &announcerStub{err: errors.New("db down")}
	job := NewCampaignCloseJob(stub, time.Millisecond)

	job.announceClosed(context.Background())
	require.Equal(t, 1, stub.calls)
}

func TestNewCampaignCloseJob_DefaultInterval(t *testing.T) {
	job := NewCampaignCloseJob(&announcerStub{}, 0)
	require.Equal(t, 30*time.Second, job.interval)
}

func TestStartStop_TicksAndStopsByContext(t *testing.T) {
	stub := &announcerStub{}
	job := NewCampaignCloseJob(stub, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return stub.callCount() > 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestStartStop_StopsByStopChannel(t *testing.T) {
	job := NewCampaignCloseJob(&announcerStub{}, time.Hour)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}
