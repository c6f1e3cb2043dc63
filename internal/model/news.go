package model

// NewsItem is a single normalized article. Standard-mode and deep-analysis
// rows populate different subsets of these fields; unmapped fields stay
// empty. Items are recreated on every feed fetch and never persisted; all
// state that outlives a fetch (bookmarks, votes, comments, insights) is
// keyed by the derived ID.
type NewsItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Date     string `json:"date"`
	ImageURL string `json:"image_url"`

	// Standard feed fields.
	Keyword                string `json:"keyword,omitempty"`
	Source                 string `json:"source,omitempty"`
	Tags                   string `json:"tags,omitempty"`
	Summary                string `json:"summary,omitempty"`
	Content                string `json:"content,omitempty"`
	Nickname               string `json:"nickname,omitempty"`
	CompanyName            string `json:"company_name,omitempty"`
	JobTitle               string `json:"job_title,omitempty"`
	RecommendationStrength int    `json:"recommendation_strength,omitempty"`
	RecommendationReason   string `json:"recommendation_reason,omitempty"`
	Likes                  int    `json:"likes,omitempty"`

	// Deep-analysis feed fields. Details holds the non-empty detail
	// paragraphs in column order; inline __underline__ markup is kept
	// verbatim for the rendering surface.
	NewsContent string   `json:"news_content,omitempty"`
	Details     []string `json:"details,omitempty"`
}
