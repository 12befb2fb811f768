package models

// EnrichedPost is a post joined with its author and display fields.
// It is derived on every read and never persisted.
type EnrichedPost struct {
	Post
	User        User   `json:"user"`
	Avatar      string `json:"avatar"`
	PostImage   string `json:"postImage,omitempty"`
	HasImage    bool   `json:"hasImage"`
	WordCount   int    `json:"wordCount,omitempty"`
	ReadingTime int    `json:"readingTime,omitempty"`
}

// PostWithComments is the detail view of a post.
type PostWithComments struct {
	EnrichedPost
	Comments []Comment `json:"comments"`
}
