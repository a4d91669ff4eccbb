package domain

// Comment represents a comment on a post
type Comment struct {
	ID          int64  `json:"id"`
	PostID      int64  `json:"postId"`
	UserID      int64  `json:"userId"`
	Comment     string `json:"comment"`
	CreatedDate string `json:"createdDate,omitempty"`
	User        User   `json:"user"`
}

// NewComment is the payload sent to create a comment
type NewComment struct {
	UserID  int64  `json:"userId"`
	PostID  int64  `json:"postId"`
	Comment string `json:"comment"`
}
