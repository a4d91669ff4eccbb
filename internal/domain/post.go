package domain

// PostStatus is the recruitment state of a post
type PostStatus string

const (
	PostStatusOpen   PostStatus = "OPEN"
	PostStatusClosed PostStatus = "CLOSED"
)

// Category labels used by the board
const (
	CategoryTeamProject = "team-project"
	CategoryDeveloper   = "developer"
	CategoryDesigner    = "designer"
	CategoryStudy       = "study"
)

// Post represents a board post
type Post struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Category    string     `json:"category,omitempty"`
	Field       string     `json:"field,omitempty"`
	Status      PostStatus `json:"status,omitempty"`
	CreatedDate string     `json:"createdDate,omitempty"`
	User        User       `json:"user"`
}
