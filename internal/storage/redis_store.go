package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"newsdesk/internal/model"
)

// RedisStore holds the shared vote-counter and comment collections for
// one application namespace. Counters are hashes keyed by item
// identifier; comments are a single append-only list. Writers publish a
// notification after every change so mirrors can re-read the snapshot.
type RedisStore struct {
	rdb *redis.Client
	ns  string
}

func NewRedisStore(rdb *redis.Client, namespace string) *RedisStore {
	return &RedisStore{rdb: rdb, ns: namespace}
}

func votesKey(ns, id string) string {
	return fmt.Sprintf("insight:%s:votes:%s", ns, id)
}

func commentsKey(ns string) string {
	return fmt.Sprintf("insight:%s:comments", ns)
}

func votesChannel(ns string) string {
	return fmt.Sprintf("insight:%s:notify:votes", ns)
}

func commentsChannel(ns string) string {
	return fmt.Sprintf("insight:%s:notify:comments", ns)
}

// Votes reads the counter doc for an item. A missing doc reads as zero.
func (s *RedisStore) Votes(ctx context.Context, id string) (model.VoteCount, error) {
	m, err := s.rdb.HGetAll(ctx, votesKey(s.ns, id)).Result()
	if err != nil {
		return model.VoteCount{}, err
	}
	return model.VoteCount{
		Upvotes:   atoi(m["upvotes"]),
		Downvotes: atoi(m["downvotes"]),
	}, nil
}

// SetVotes merge-writes the two counter fields, leaving any unrelated
// fields on the doc alone, then signals subscribers. This is not
// transactional against concurrent voters; a racing increment can be
// lost.
func (s *RedisStore) SetVotes(ctx context.Context, id string, vc model.VoteCount) error {
	key := votesKey(s.ns, id)
	if err := s.rdb.HSet(ctx, key, "upvotes", vc.Upvotes, "downvotes", vc.Downvotes).Err(); err != nil {
		return err
	}
	return s.rdb.Publish(ctx, votesChannel(s.ns), id).Err()
}

// AllVotes returns the full counter collection, keyed by item identifier.
func (s *RedisStore) AllVotes(ctx context.Context) (map[string]model.VoteCount, error) {
	out := map[string]model.VoteCount{}
	prefix := votesKey(s.ns, "")
	iter := s.rdb.Scan(ctx, 0, votesKey(s.ns, "*"), 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id := strings.TrimPrefix(key, prefix)
		m, err := s.rdb.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, err
		}
		out[id] = model.VoteCount{Upvotes: atoi(m["upvotes"]), Downvotes: atoi(m["downvotes"])}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AppendComment appends one comment record and signals subscribers.
func (s *RedisStore) AppendComment(ctx context.Context, c model.Comment) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := s.rdb.RPush(ctx, commentsKey(s.ns), b).Err(); err != nil {
		return err
	}
	return s.rdb.Publish(ctx, commentsChannel(s.ns), c.ItemID).Err()
}

// AllComments returns the comment collection in creation order. Records
// that fail to decode are skipped with a logged diagnostic rather than
// poisoning the snapshot.
func (s *RedisStore) AllComments(ctx context.Context) ([]model.Comment, error) {
	raw, err := s.rdb.LRange(ctx, commentsKey(s.ns), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Comment, 0, len(raw))
	for _, r := range raw {
		var c model.Comment
		if err := json.Unmarshal([]byte(r), &c); err != nil {
			slog.Warn("storage: skipping undecodable comment record", "err", err)
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// SubscribeVotes streams one signal per vote-change notification until
// the context is cancelled; the underlying subscription is released on
// cancellation and the channel closed.
func (s *RedisStore) SubscribeVotes(ctx context.Context) <-chan struct{} {
	return notify(ctx, s.rdb.Subscribe(ctx, votesChannel(s.ns)))
}

// SubscribeComments streams one signal per comment-change notification
// until the context is cancelled.
func (s *RedisStore) SubscribeComments(ctx context.Context) <-chan struct{} {
	return notify(ctx, s.rdb.Subscribe(ctx, commentsChannel(s.ns)))
}

// notify collapses a pub/sub message stream into change signals. The
// out channel carries at most one pending signal; consumers re-read the
// full snapshot anyway, so coalescing bursts loses nothing.
func notify(ctx context.Context, ps *redis.PubSub) <-chan struct{} {
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
