package insight

import (
	"context"
	"errors"
	"sync"
	"testing"

	"newsdesk/internal/model"
)

type fakeStore struct {
	mu       sync.Mutex
	votes    map[string]model.VoteCount
	comments []model.Comment
	failNext error
}

func newFakeStore() *fakeStore {
	return &fakeStore{votes: map[string]model.VoteCount{}}
}

func (s *fakeStore) Votes(ctx context.Context, id string) (model.VoteCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.votes[id], nil
}

func (s *fakeStore) SetVotes(ctx context.Context, id string, vc model.VoteCount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[id] = vc
	return nil
}

func (s *fakeStore) AppendComment(ctx context.Context, c model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	s.comments = append(s.comments, c)
	return nil
}

type fakeGen struct {
	text    string
	err     error
	started chan struct{} // closed when Generate begins, if set
	release chan struct{} // Generate blocks on this, if set
}

func (g *fakeGen) Generate(ctx context.Context, prompt string) (string, error) {
	if g.started != nil {
		close(g.started)
		g.started = nil
	}
	if g.release != nil {
		<-g.release
	}
	return g.text, g.err
}

func testItem() model.NewsItem {
	return model.NewsItem{ID: "기사_2025-03-03", Title: "기사", Date: "2025-03-03", Content: "본문"}
}

func TestRequestCachesInsight(t *testing.T) {
	o := New(newFakeStore(), &fakeGen{text: "인사이트"}, "", "")
	it := testItem()

	text, err := o.Request(context.Background(), it)
	if err != nil || text != "인사이트" {
		t.Fatalf("Request: %q err=%v", text, err)
	}
	if e := o.Lookup(it.ID); e.Status != StatusReady || e.Text != "인사이트" {
		t.Errorf("expected cached ready entry, got %+v", e)
	}
	// A second request against ready state is a no-op.
	if _, err := o.Request(context.Background(), it); !errors.Is(err, ErrAlreadyRequested) {
		t.Errorf("expected ErrAlreadyRequested, got %v", err)
	}
}

func TestRequestRejectsDuplicateWhileLoading(t *testing.T) {
	gen := &fakeGen{text: "나중에", started: make(chan struct{}), release: make(chan struct{})}
	started := gen.started
	o := New(newFakeStore(), gen, "", "")
	it := testItem()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := o.Request(context.Background(), it); err != nil {
			t.Errorf("first request failed: %v", err)
		}
	}()
	<-started
	if e := o.Lookup(it.ID); e.Status != StatusLoading {
		t.Fatalf("expected loading state, got %+v", e)
	}
	if _, err := o.Request(context.Background(), it); !errors.Is(err, ErrAlreadyRequested) {
		t.Errorf("duplicate while loading should be rejected, got %v", err)
	}
	close(gen.release)
	<-done
	if e := o.Lookup(it.ID); e.Status != StatusReady {
		t.Errorf("expected ready after release, got %+v", e)
	}
}

func TestRequestFailureIsCachedVisibly(t *testing.T) {
	genErr := errors.New("insight generation failed: rate limited")
	o := New(newFakeStore(), &fakeGen{err: genErr}, "", "")
	it := testItem()

	text, err := o.Request(context.Background(), it)
	if err == nil {
		t.Fatalf("expected error")
	}
	if text != genErr.Error() {
		t.Errorf("failure message should be returned as display text, got %q", text)
	}
	e := o.Lookup(it.ID)
	if e.Status != StatusFailed || e.Text != genErr.Error() {
		t.Errorf("failure must be cached for display, got %+v", e)
	}
	// Failed state allows a manual retry.
	o2gen := &fakeGen{text: "재시도 성공"}
	o.gen = o2gen
	if text, err := o.Request(context.Background(), it); err != nil || text != "재시도 성공" {
		t.Errorf("retry after failure should run, got %q err=%v", text, err)
	}
}

func TestVoteReadModifyWrite(t *testing.T) {
	store := newFakeStore()
	o := New(store, nil, "", "")

	vc, err := o.Vote(context.Background(), "id1", Up)
	if err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if vc.Upvotes != 1 || vc.Downvotes != 0 {
		t.Errorf("first upvote: got %+v", vc)
	}
	vc, err = o.Vote(context.Background(), "id1", Down)
	if err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if vc.Upvotes != 1 || vc.Downvotes != 1 {
		t.Errorf("after up+down: got %+v", vc)
	}
	if _, err := o.Vote(context.Background(), "id1", Direction("sideways")); err == nil {
		t.Errorf("invalid direction should fail")
	}
}

func TestAddCommentAppendsUserThenAIReply(t *testing.T) {
	store := newFakeStore()
	o := New(store, &fakeGen{text: "AI 답글"}, "reader", "ai-curator")

	user, reply, err := o.AddComment(context.Background(), "id1", "기사 제목", "test")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if len(store.comments) != 2 {
		t.Fatalf("expected 2 persisted comments, got %d", len(store.comments))
	}
	if store.comments[0].Role != model.RoleUser || store.comments[1].Role != model.RoleAI {
		t.Errorf("comment roles wrong: %+v", store.comments)
	}
	if store.comments[0].ItemID != "id1" || store.comments[1].ItemID != "id1" {
		t.Errorf("both comments must share the item id")
	}
	if user.AuthorID != "reader" || reply.AuthorID != "ai-curator" {
		t.Errorf("author identities wrong: %q %q", user.AuthorID, reply.AuthorID)
	}
}

func TestAddCommentKeepsUserCommentOnReplyFailure(t *testing.T) {
	store := newFakeStore()
	o := New(store, &fakeGen{err: errors.New("model unavailable")}, "", "")

	_, _, err := o.AddComment(context.Background(), "id1", "기사 제목", "의견")
	if err == nil {
		t.Fatalf("expected reply failure")
	}
	if len(store.comments) != 1 || store.comments[0].Role != model.RoleUser {
		t.Errorf("user comment must survive reply failure, got %+v", store.comments)
	}
}
