package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/javaloayza/postboard/models"
)

func TestCanEdit(t *testing.T) {
	tests := []struct {
		name  string
		actor int
		post  models.Post
		want  bool
	}{
		{name: "own remote post", actor: 1, post: models.Post{ID: 5, UserID: 1}, want: true},
		{name: "other remote post", actor: 1, post: models.Post{ID: 50, UserID: 2}, want: false},
		{name: "local post of other user", actor: 1, post: models.Post{ID: 10001, UserID: 2}, want: true},
		{name: "different actor", actor: 2, post: models.Post{ID: 50, UserID: 2}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEdit(tt.actor, tt.post))
			assert.Equal(t, tt.want, CanDelete(tt.actor, tt.post))
			assert.Equal(t, Permissions{CanEdit: tt.want, CanDelete: tt.want}, PermissionsFor(tt.actor, tt.post))
		})
	}
}

func TestHasImageIsStableAndMixed(t *testing.T) {
	with := 0
	for id := 1; id <= 1000; id++ {
		assert.Equal(t, HasImage(id), HasImage(id))
		if HasImage(id) {
			with++
		}
	}
	assert.InDelta(t, 700, with, 100)
}

func TestEnrich(t *testing.T) {
	post := models.Post{ID: 12, UserID: 3, Body: "a b c"}
	ep := Enrich(post, models.DefaultUser(3))

	assert.Equal(t, post, ep.Post)
	assert.Equal(t, "https://api.dicebear.com/7.x/avataaars/svg?seed=user3post12", ep.Avatar)
	if ep.HasImage {
		assert.Equal(t, "https://picsum.photos/400/250?random=12", ep.PostImage)
	} else {
		assert.Empty(t, ep.PostImage)
	}

	detail := EnrichDetail(post, models.DefaultUser(3))
	assert.Equal(t, 3, detail.WordCount)
	assert.Equal(t, 1, detail.ReadingTime)
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"one two three", 3},
		{"", 1},
		{"double  space", 3},
		{"line\nbreak", 1},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, WordCount(tt.body))
		})
	}
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, ReadingTime(0))
	assert.Equal(t, 1, ReadingTime(1))
	assert.Equal(t, 1, ReadingTime(200))
	assert.Equal(t, 2, ReadingTime(201))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "LG", Initials("Leanne Graham"))
	assert.Equal(t, "CD", Initials("clementine du buque"))
	assert.Equal(t, "Á", Initials("álvaro"))
	assert.Equal(t, "", Initials("  "))
	assert.Equal(t, "https://ui-avatars.com/api/?name=Leanne+Graham&background=random", AvatarFallbackURL("Leanne Graham"))
}
