package usecases

import (
	"context"
	"sync"

	"crowdfund.backend/internal/domain/repositories"
)

// Sequencer applies state-changing operations one at a time, each inside its own transaction.
// Every operation re-reads state after acquiring the lock, so preconditions are checked
// against what is committed at execution time.
type Sequencer struct {
	mu  sync.Mutex
	uow repositories.UnitOfWork
}

// NewSequencer creates a sequencer over uow
func NewSequencer(uow repositories.UnitOfWork) *Sequencer {
	return &Sequencer{uow: uow}
}

// Run executes fn serially and atomically
func (s *Sequencer) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uow.Do(ctx, fn)
}
