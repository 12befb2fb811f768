package reconcile

import "github.com/javaloayza/postboard/models"

// CanEdit reports whether actor may edit post: local posts are editable by
// anyone, remote posts only by their author.
func CanEdit(actor int, post models.Post) bool {
	return post.IsLocal() || post.UserID == actor
}

// CanDelete follows the same rule as CanEdit.
func CanDelete(actor int, post models.Post) bool {
	return CanEdit(actor, post)
}

// Permissions is the per-actor capability view of a post.
type Permissions struct {
	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
}

func PermissionsFor(actor int, post models.Post) Permissions {
	return Permissions{CanEdit: CanEdit(actor, post), CanDelete: CanDelete(actor, post)}
}
