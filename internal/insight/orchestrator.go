package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"newsdesk/internal/model"
)

// Status of one item's insight request.
type Status string

const (
	StatusNone    Status = "none"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Entry is the cached insight state for one item. For failed requests
// Text carries the failure message, which is displayed in place of the
// insight so the user can retry manually.
type Entry struct {
	Status Status
	Text   string
}

// ErrAlreadyRequested rejects a duplicate request while one is in flight
// or a result is already cached.
var ErrAlreadyRequested = errors.New("insight: already requested for item")

// Vote directions.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MetricStore is the slice of the shared document store the orchestrator
// needs: counter read/merge-write and comment append.
type MetricStore interface {
	Votes(ctx context.Context, id string) (model.VoteCount, error)
	SetVotes(ctx context.Context, id string, vc model.VoteCount) error
	AppendComment(ctx context.Context, c model.Comment) error
}

// Generator produces AI text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Orchestrator coordinates per-item insight generation, voting and the
// human/AI comment thread. Generation state is a per-identifier state
// machine so "already loading" is a state, not a stray flag.
type Orchestrator struct {
	store       MetricStore
	gen         Generator
	userAuthor  string
	replyAuthor string
	now         func() time.Time

	mu      sync.Mutex
	entries map[string]Entry
}

func New(store MetricStore, gen Generator, userAuthor, replyAuthor string) *Orchestrator {
	if userAuthor == "" {
		userAuthor = "reader"
	}
	if replyAuthor == "" {
		replyAuthor = "ai-curator"
	}
	return &Orchestrator{
		store:       store,
		gen:         gen,
		userAuthor:  userAuthor,
		replyAuthor: replyAuthor,
		now:         time.Now,
		entries:     map[string]Entry{},
	}
}

// Lookup returns the cached insight state for an item.
func (o *Orchestrator) Lookup(id string) Entry {
	o.mu.Lock()
	defer o.mu.Unlock()
	if e, ok := o.entries[id]; ok {
		return e
	}
	return Entry{Status: StatusNone}
}

// Request generates commentary for one item. While a request is loading,
// or once one has succeeded, further requests are rejected with
// ErrAlreadyRequested; a failed request may be retried. On exhaustion the
// failure message is cached as the displayed text.
func (o *Orchestrator) Request(ctx context.Context, item model.NewsItem) (string, error) {
	o.mu.Lock()
	if e := o.entries[item.ID]; e.Status == StatusLoading || e.Status == StatusReady {
		o.mu.Unlock()
		return e.Text, ErrAlreadyRequested
	}
	o.entries[item.ID] = Entry{Status: StatusLoading}
	o.mu.Unlock()

	text, err := o.gen.Generate(ctx, insightPrompt(item))

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		// Fail visibly: the message takes the insight's place until the
		// user retries.
		o.entries[item.ID] = Entry{Status: StatusFailed, Text: err.Error()}
		return err.Error(), err
	}
	o.entries[item.ID] = Entry{Status: StatusReady, Text: text}
	return text, nil
}

// Vote reads the item's counter doc (absent reads as zero), bumps one
// side, and merge-writes it back. Best-effort: concurrent voters can race
// and one increment can be lost.
func (o *Orchestrator) Vote(ctx context.Context, id string, dir Direction) (model.VoteCount, error) {
	vc, err := o.store.Votes(ctx, id)
	if err != nil {
		return model.VoteCount{}, fmt.Errorf("read votes for %s: %w", id, err)
	}
	switch dir {
	case Up:
		vc.Upvotes++
	case Down:
		vc.Downvotes++
	default:
		return vc, fmt.Errorf("invalid vote direction %q", dir)
	}
	if err := o.store.SetVotes(ctx, id, vc); err != nil {
		return vc, fmt.Errorf("persist vote for %s: %w", id, err)
	}
	return vc, nil
}

// AddComment appends the user's comment, then requests an AI reply and
// appends it under the reply author identity. The two appends are a
// dependent follow-up, not an atomic pair: when reply generation fails
// the user comment stays persisted and the error is returned.
func (o *Orchestrator) AddComment(ctx context.Context, itemID, title, text string) (user, reply model.Comment, err error) {
	user = model.Comment{
		ItemID:    itemID,
		Text:      text,
		CreatedAt: o.now(),
		AuthorID:  o.userAuthor,
		Role:      model.RoleUser,
	}
	if err := o.store.AppendComment(ctx, user); err != nil {
		return user, reply, fmt.Errorf("persist comment for %s: %w", itemID, err)
	}

	replyText, err := o.gen.Generate(ctx, replyPrompt(title, text))
	if err != nil {
		return user, reply, fmt.Errorf("generate reply for %s: %w", itemID, err)
	}
	reply = model.Comment{
		ItemID:    itemID,
		Text:      replyText,
		CreatedAt: o.now(),
		AuthorID:  o.replyAuthor,
		Role:      model.RoleAI,
	}
	if err := o.store.AppendComment(ctx, reply); err != nil {
		slog.Error("insight: ai reply generated but not persisted", "item", itemID, "err", err)
		return user, reply, fmt.Errorf("persist reply for %s: %w", itemID, err)
	}
	return user, reply, nil
}
