package feed

import (
	"regexp"
	"strconv"
	"strings"

	"newsdesk/internal/model"
)

// Mode selects which tabular source and column layout is active.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeDeep     Mode = "deep"
)

// FieldMap gives the column position of each logical field for one sheet
// layout. Unmapped fields are -1.
type FieldMap struct {
	Title                  int
	Keyword                int
	Source                 int
	Tags                   int
	URL                    int
	Date                   int
	Summary                int
	Content                int
	ImageURL               int
	Nickname               int
	CompanyName            int
	JobTitle               int
	RecommendationStrength int
	RecommendationReason   int
	Likes                  int
	NewsContent            int
	Details                [5]int
}

// StandardFields is the fixed column layout of the standard feed sheet.
func StandardFields() FieldMap {
	return FieldMap{
		Title:                  0,
		Keyword:                1,
		Source:                 2,
		Tags:                   3,
		URL:                    4,
		Date:                   5,
		Summary:                6,
		Content:                7,
		ImageURL:               8,
		Nickname:               9,
		CompanyName:            10,
		JobTitle:               11,
		RecommendationStrength: 12,
		RecommendationReason:   13,
		Likes:                  14,
		NewsContent:            -1,
		Details:                [5]int{-1, -1, -1, -1, -1},
	}
}

// DeepFields is the fixed column layout of the deep-analysis sheet.
func DeepFields() FieldMap {
	return FieldMap{
		Title:                  0,
		NewsContent:            1,
		Details:                [5]int{2, 3, 4, 5, 6},
		URL:                    7,
		ImageURL:               8,
		Date:                   9,
		Keyword:                -1,
		Source:                 -1,
		Tags:                   -1,
		Summary:                -1,
		Content:                -1,
		Nickname:               -1,
		CompanyName:            -1,
		JobTitle:               -1,
		RecommendationStrength: -1,
		RecommendationReason:   -1,
		Likes:                  -1,
	}
}

// Fields returns the column layout for a mode.
func Fields(mode Mode) FieldMap {
	if mode == ModeDeep {
		return DeepFields()
	}
	return StandardFields()
}

// idStrip removes everything except ASCII letters, digits and Hangul
// before the title joins the identifier. Hangul covers the syllable
// block plus the jamo and compatibility-jamo blocks, so headline
// particles like "ㅋㅋ" survive into the key.
var idStrip = regexp.MustCompile(`[^0-9A-Za-z\x{1100}-\x{11FF}\x{3131}-\x{318E}\x{AC00}-\x{D7A3}]`)

// DeriveID computes the stable content-derived identifier for an item.
// Two rows with the same stripped title and date collapse to the same ID;
// that is the intended dedup behavior, and the ID is the join key for
// bookmarks, votes, comments and cached insights.
func DeriveID(title, date string) string {
	return idStrip.ReplaceAllString(title, "") + "_" + date
}

// Normalize maps one raw row onto a NewsItem using the given layout.
// Missing cells default to empty strings. Rows without a title report
// ok=false and are expected to be dropped silently (blank and header
// rows).
func Normalize(row []string, fm FieldMap) (model.NewsItem, bool) {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	title := cell(fm.Title)
	if title == "" {
		return model.NewsItem{}, false
	}
	it := model.NewsItem{
		Title:                  title,
		Keyword:                cell(fm.Keyword),
		Source:                 cell(fm.Source),
		Tags:                   cell(fm.Tags),
		URL:                    cell(fm.URL),
		Date:                   cell(fm.Date),
		Summary:                cell(fm.Summary),
		Content:                cell(fm.Content),
		ImageURL:               cell(fm.ImageURL),
		Nickname:               cell(fm.Nickname),
		CompanyName:            cell(fm.CompanyName),
		JobTitle:               cell(fm.JobTitle),
		RecommendationStrength: atoi(cell(fm.RecommendationStrength)),
		RecommendationReason:   cell(fm.RecommendationReason),
		Likes:                  atoi(cell(fm.Likes)),
		NewsContent:            cell(fm.NewsContent),
	}
	for _, idx := range fm.Details {
		if p := cell(idx); p != "" {
			it.Details = append(it.Details, p)
		}
	}
	it.ID = DeriveID(it.Title, it.Date)
	return it, true
}

// NormalizeRows runs Normalize over a row matrix, dropping rows without a
// title.
func NormalizeRows(rows [][]string, fm FieldMap) []model.NewsItem {
	items := make([]model.NewsItem, 0, len(rows))
	for _, row := range rows {
		if it, ok := Normalize(row, fm); ok {
			items = append(items, it)
		}
	}
	return items
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
