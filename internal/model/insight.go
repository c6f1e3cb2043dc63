package model

import "time"

// Comment author roles.
const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// Comment is one entry in an item's human/AI discussion thread.
// Comments are append-only; there is no edit or delete.
type Comment struct {
	ItemID    string    `json:"item_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  string    `json:"author_id"`
	Role      string    `json:"role"`
}

// VoteCount is the per-item up/down tally owned by the shared store.
// Local copies are read-through mirrors and only change via a round-trip
// write.
type VoteCount struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}
