package realtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"newsdesk/internal/model"
)

type fakeSource struct {
	mu       sync.Mutex
	votes    map[string]model.VoteCount
	comments []model.Comment

	voteCh    chan struct{}
	commentCh chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		votes:     map[string]model.VoteCount{},
		voteCh:    make(chan struct{}, 1),
		commentCh: make(chan struct{}, 1),
	}
}

func (f *fakeSource) AllVotes(ctx context.Context) (map[string]model.VoteCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]model.VoteCount, len(f.votes))
	for k, v := range f.votes {
		out[k] = v
	}
	return out, nil
}

func (f *fakeSource) AllComments(ctx context.Context) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Comment(nil), f.comments...), nil
}

func (f *fakeSource) SubscribeVotes(ctx context.Context) <-chan struct{} {
	return f.voteCh
}

func (f *fakeSource) SubscribeComments(ctx context.Context) <-chan struct{} {
	return f.commentCh
}

func (f *fakeSource) set(votes map[string]model.VoteCount, comments []model.Comment) {
	f.mu.Lock()
	f.votes = votes
	f.comments = comments
	f.mu.Unlock()
}

func TestRefreshReplacesMirrorWholesale(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	src.set(
		map[string]model.VoteCount{
			"item-a": {Upvotes: 2, Downvotes: 1},
			"item-b": {Upvotes: 5},
		},
		[]model.Comment{{ItemID: "item-a", Text: "첫 댓글", Role: model.RoleUser}},
	)

	s := New(src)
	s.refreshVotes(ctx)
	s.refreshComments(ctx)
	if got := s.Votes("item-a"); got.Upvotes != 2 {
		t.Fatalf("mirror not primed: %+v", got)
	}

	// The next snapshot no longer contains item-a. A refresh must drop
	// it from the mirror, not leave a stale merged entry behind.
	src.set(
		map[string]model.VoteCount{"item-c": {Upvotes: 1}},
		[]model.Comment{{ItemID: "item-c", Text: "새 댓글", Role: model.RoleUser}},
	)
	s.refreshVotes(ctx)
	s.refreshComments(ctx)

	if got := s.Votes("item-a"); got != (model.VoteCount{}) {
		t.Errorf("stale vote entry survived refresh: %+v", got)
	}
	if got := s.Votes("item-c"); got.Upvotes != 1 {
		t.Errorf("new vote entry missing after refresh: %+v", got)
	}
	if got := s.Comments("item-a"); len(got) != 0 {
		t.Errorf("stale comment thread survived refresh: %+v", got)
	}
	if got := s.Comments("item-c"); len(got) != 1 || got[0].Text != "새 댓글" {
		t.Errorf("new comment thread missing after refresh: %+v", got)
	}
}

func TestStartRefreshesOnNotificationAndStopsOnCancel(t *testing.T) {
	src := newFakeSource()
	src.set(map[string]model.VoteCount{"item-a": {Upvotes: 1}}, nil)

	s := New(src)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	waitFor(t, func() bool { return s.Votes("item-a").Upvotes == 1 })

	src.set(map[string]model.VoteCount{"item-b": {Upvotes: 3}}, nil)
	src.voteCh <- struct{}{}
	waitFor(t, func() bool {
		return s.Votes("item-b").Upvotes == 3 && s.Votes("item-a") == (model.VoteCount{})
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error on shutdown: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("sync did not stop on cancellation")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}
