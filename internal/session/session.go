package session

import (
	"sync"
	"time"

	"newsdesk/internal/bookmark"
	"newsdesk/internal/feed"
	"newsdesk/internal/model"
)

// Session owns the per-run view state: the current item set, active tab,
// keyword selection and pagination watermarks. All mutation goes through
// its methods, so the state transitions are auditable in one place.
type Session struct {
	bookmarks *bookmark.Store
	now       func() time.Time

	mu      sync.Mutex
	items   []model.NewsItem
	latest  string
	tab     feed.Tab
	keyword string
	marks   *feed.Watermarks
}

func New(bm *bookmark.Store) *Session {
	return &Session{
		bookmarks: bm,
		now:       time.Now,
		tab:       feed.TabAll,
		marks:     feed.NewWatermarks(),
	}
}

// Install replaces the item set with a fresh fetch. A refetch fully
// replaces the previous items and resets pagination; bookmarks, votes,
// comments and cached insights survive because they are keyed by the
// derived identifier.
func (s *Session) Install(items []model.NewsItem, latest string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.latest = latest
	s.marks.Reset()
}

// SetTab switches the active view filter. Watermarks are kept; they only
// reset on a fresh item install.
func (s *Session) SetTab(tab feed.Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = tab
}

// SetKeyword selects a keyword chip; it only affects the all tab.
func (s *Session) SetKeyword(k string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyword = k
}

// LoadMore raises the visible-count watermark for one date bucket.
func (s *Session) LoadMore(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marks.LoadMore(date)
}

// ToggleBookmark flips one item's bookmark state.
func (s *Session) ToggleBookmark(id string) (bool, error) {
	return s.bookmarks.Toggle(id)
}

// Visible computes the date-grouped view for the active tab, truncated by
// the per-date watermarks.
func (s *Session) Visible() feed.Grouped {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := feed.Select(s.items, feed.Selection{
		Tab:        s.tab,
		Keyword:    s.keyword,
		Bookmarked: s.bookmarks.Has,
		Now:        s.now(),
	})
	return s.marks.Truncate(g)
}

// Keywords lists the chips currently offerable on the all tab.
func (s *Session) Keywords() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return feed.Keywords(s.items, s.now())
}

// Items returns a copy of the current item set.
func (s *Session) Items() []model.NewsItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.NewsItem, len(s.items))
	copy(out, s.items)
	return out
}

// Find locates an item by derived identifier.
func (s *Session) Find(id string) (model.NewsItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.NewsItem{}, false
}

// LatestUpdate reports the maximum item date of the current fetch.
func (s *Session) LatestUpdate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
