package feed

import (
	"sort"
	"strings"
	"time"

	"newsdesk/internal/model"
)

// Tab is a named view filter over the normalized item set.
type Tab string

const (
	TabAll         Tab = "all"
	TabRecommended Tab = "recommended"
	TabBookmarks   Tab = "bookmarks"
	TabSubscribe   Tab = "subscribe"
	TabDeep        Tab = "deep"
)

// RecommendedTag marks an item for the recommended tab.
const RecommendedTag = "추천"

// NoDate is the bucket for items whose date cell was empty.
const NoDate = "no-date"

// windowDays is the trailing window applied by the all tab and by keyword
// chip derivation.
const windowDays = 7

// Selection describes one view of the item set.
type Selection struct {
	Tab        Tab
	Keyword    string            // keyword chip, all tab only
	Bookmarked func(string) bool // membership test against the bookmark set
	Now        time.Time
}

// Grouped is a date-partitioned view of the selected items. Dates are
// sorted descending with the no-date bucket last; order within a bucket
// is fetch order.
type Grouped struct {
	ByDate map[string][]model.NewsItem
	Dates  []string
}

// Select applies tab and keyword filtering, then groups by exact date
// string.
func Select(items []model.NewsItem, sel Selection) Grouped {
	var keep []model.NewsItem
	for _, it := range items {
		if matches(it, sel) {
			keep = append(keep, it)
		}
	}
	return group(keep)
}

func matches(it model.NewsItem, sel Selection) bool {
	switch sel.Tab {
	case TabRecommended:
		return hasTag(it.Tags, RecommendedTag)
	case TabBookmarks:
		return sel.Bookmarked != nil && sel.Bookmarked(it.ID)
	case TabSubscribe:
		return it.Nickname != "" && it.CompanyName != "" && it.JobTitle != "" &&
			it.RecommendationReason != "" && it.RecommendationStrength > 0
	case TabDeep:
		return it.Title != "" && it.NewsContent != "" && len(it.Details) > 0 && it.ImageURL != ""
	default: // TabAll
		if !withinWindow(it.Date, sel.Now) {
			return false
		}
		return sel.Keyword == "" || it.Keyword == sel.Keyword
	}
}

// Keywords lists the distinct keywords present inside the trailing window,
// in first-appearance order. The keyword chips must only ever offer these.
func Keywords(items []model.NewsItem, now time.Time) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, it := range items {
		if it.Keyword == "" || !withinWindow(it.Date, now) {
			continue
		}
		if _, ok := seen[it.Keyword]; ok {
			continue
		}
		seen[it.Keyword] = struct{}{}
		out = append(out, it.Keyword)
	}
	return out
}

func hasTag(tags, want string) bool {
	for _, t := range strings.Split(tags, ",") {
		if strings.TrimSpace(t) == want {
			return true
		}
	}
	return false
}

// dateLayouts covers the date spellings seen in the sheets.
var dateLayouts = []string{"2006-01-02", "2006.01.02", "2006/01/02"}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func withinWindow(date string, now time.Time) bool {
	t, ok := parseDate(date)
	if !ok {
		return false
	}
	cutoff := now.AddDate(0, 0, -windowDays)
	return t.After(cutoff)
}

func group(items []model.NewsItem) Grouped {
	g := Grouped{ByDate: map[string][]model.NewsItem{}}
	hasNoDate := false
	for _, it := range items {
		key := it.Date
		if key == "" {
			key = NoDate
			hasNoDate = true
		}
		if _, ok := g.ByDate[key]; !ok && key != NoDate {
			g.Dates = append(g.Dates, key)
		}
		g.ByDate[key] = append(g.ByDate[key], it)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(g.Dates)))
	if hasNoDate {
		g.Dates = append(g.Dates, NoDate)
	}
	return g
}
