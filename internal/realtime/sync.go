package realtime

import (
	"context"
	"log/slog"
	"sync"

	"newsdesk/internal/model"
)

// Source is the slice of the shared metric store the mirror consumes:
// full-collection snapshot reads plus change-notification streams. The
// streams close when their context is cancelled.
type Source interface {
	AllVotes(ctx context.Context) (map[string]model.VoteCount, error)
	AllComments(ctx context.Context) ([]model.Comment, error)
	SubscribeVotes(ctx context.Context) <-chan struct{}
	SubscribeComments(ctx context.Context) <-chan struct{}
}

// Sync keeps local mirrors of the shared vote and comment collections
// current. Every change notification triggers a full snapshot re-read;
// the mirror is then replaced wholesale, never patched. The two
// subscriptions live for the session and are released on shutdown.
type Sync struct {
	src Source

	mu       sync.RWMutex
	votes    map[string]model.VoteCount
	comments map[string][]model.Comment
}

func New(src Source) *Sync {
	return &Sync{
		src:      src,
		votes:    map[string]model.VoteCount{},
		comments: map[string][]model.Comment{},
	}
}

// Start primes both mirrors, then blocks consuming change notifications
// until the context is cancelled. It satisfies worker.Worker so the
// session supervisor owns its lifetime; cancellation tears down both
// subscriptions.
func (s *Sync) Start(ctx context.Context) error {
	s.refreshVotes(ctx)
	s.refreshComments(ctx)

	voteCh := s.src.SubscribeVotes(ctx)
	commentCh := s.src.SubscribeComments(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-voteCh:
			if !ok {
				return nil
			}
			s.refreshVotes(ctx)
		case _, ok := <-commentCh:
			if !ok {
				return nil
			}
			s.refreshComments(ctx)
		}
	}
}

// Votes returns the mirrored tally for an item; absent reads as zero.
func (s *Sync) Votes(id string) model.VoteCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.votes[id]
}

// Comments returns the mirrored thread for an item in creation order.
func (s *Sync) Comments(id string) []model.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.comments[id]
}

func (s *Sync) refreshVotes(ctx context.Context) {
	snapshot, err := s.src.AllVotes(ctx)
	if err != nil {
		slog.Error("realtime: vote snapshot refresh failed", "err", err)
		return
	}
	s.mu.Lock()
	s.votes = snapshot
	s.mu.Unlock()
}

func (s *Sync) refreshComments(ctx context.Context) {
	all, err := s.src.AllComments(ctx)
	if err != nil {
		slog.Error("realtime: comment snapshot refresh failed", "err", err)
		return
	}
	byItem := map[string][]model.Comment{}
	for _, c := range all {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}
	s.mu.Lock()
	s.comments = byItem
	s.mu.Unlock()
}
