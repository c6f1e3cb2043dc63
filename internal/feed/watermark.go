package feed

import "newsdesk/internal/model"

const (
	initialVisible = 10
	loadMoreStep   = 7
)

// Watermarks tracks the per-date visible-item count used for incremental
// pagination. Counts start at 10, grow by 7 per load-more, never shrink,
// and reset only when a fresh item set is installed.
type Watermarks struct {
	counts map[string]int
}

func NewWatermarks() *Watermarks {
	return &Watermarks{counts: map[string]int{}}
}

// Visible reports how many items of a date bucket are currently shown.
func (w *Watermarks) Visible(date string) int {
	if n, ok := w.counts[date]; ok {
		return n
	}
	return initialVisible
}

// LoadMore raises the watermark for one date bucket.
func (w *Watermarks) LoadMore(date string) {
	w.counts[date] = w.Visible(date) + loadMoreStep
}

// Reset drops all watermarks back to the initial count.
func (w *Watermarks) Reset() {
	w.counts = map[string]int{}
}

// Truncate returns a copy of g with each bucket cut to its watermark.
func (w *Watermarks) Truncate(g Grouped) Grouped {
	out := Grouped{ByDate: make(map[string][]model.NewsItem, len(g.ByDate)), Dates: g.Dates}
	for date, items := range g.ByDate {
		n := w.Visible(date)
		if n > len(items) {
			n = len(items)
		}
		out.ByDate[date] = items[:n]
	}
	return out
}
