package models

// LocalIDFloor is the smallest id handed out to locally created posts.
// Remote ids are expected to stay below it; provenance is inferred from the id alone.
const LocalIDFloor = 10001

// Post is the raw record served by the remote API and kept by the local store.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// IsLocal reports whether the post was created locally.
func (p Post) IsLocal() bool {
	return IsLocalID(p.ID)
}

// IsLocalID reports whether id falls in the synthetic local range.
func IsLocalID(id int) bool {
	return id >= LocalIDFloor
}

// PostInput holds the caller supplied fields of a new post.
type PostInput struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// PostPatch is a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
	UserID *int    `json:"userId,omitempty"`
}

// Apply shallow-merges the patch into post and returns the result.
func (p PostPatch) Apply(post Post) Post {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Body != nil {
		post.Body = *p.Body
	}
	if p.UserID != nil {
		post.UserID = *p.UserID
	}
	return post
}

// IsEmpty reports whether the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Body == nil && p.UserID == nil
}

// Changes reports whether applying the patch would alter post.
func (p PostPatch) Changes(post Post) bool {
	return p.Apply(post) != post
}
