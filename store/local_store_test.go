package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javaloayza/postboard/models"
	"github.com/javaloayza/postboard/storage"
)

// failingSlots wraps MemorySlots and fails writes on demand.
type failingSlots struct {
	*storage.MemorySlots
	failSet bool
	failGet bool
}

var errBroken = errors.New("quota exceeded")

func (f *failingSlots) Get(key string) (string, bool, error) {
	if f.failGet {
		return "", false, errBroken
	}
	return f.MemorySlots.Get(key)
}

func (f *failingSlots) Set(key, value string) error {
	if f.failSet {
		return errBroken
	}
	return f.MemorySlots.Set(key, value)
}

func newStore(t *testing.T) (*LocalStore, *failingSlots) {
	t.Helper()
	slots := &failingSlots{MemorySlots: storage.NewMemorySlots()}
	return NewLocalStore(slots, DefaultKeys()), slots
}

func strPtr(s string) *string { return &s }

func TestAddCustomPostAllocatesIncreasingIDs(t *testing.T) {
	s, _ := newStore(t)

	prev := 0
	for i := 0; i < 5; i++ {
		p, err := s.AddCustomPost(models.PostInput{Title: "t", Body: "b", UserID: 1})
		require.NoError(t, err)
		if i == 0 {
			assert.Equal(t, 10001, p.ID)
		}
		assert.Greater(t, p.ID, prev)
		prev = p.ID
	}
	assert.Len(t, s.GetCustomPosts(), 5)
}

func TestAddCustomPostDoesNotReuseDeletedID(t *testing.T) {
	s, _ := newStore(t)

	first, err := s.AddCustomPost(models.PostInput{Title: "a"})
	require.NoError(t, err)
	second, err := s.AddCustomPost(models.PostInput{Title: "b"})
	require.NoError(t, err)

	removed, err := s.DeleteCustomPost(second.ID)
	require.NoError(t, err)
	require.True(t, removed)

	third, err := s.AddCustomPost(models.PostInput{Title: "c"})
	require.NoError(t, err)
	assert.Equal(t, 10001, first.ID)
	assert.Equal(t, 10003, third.ID)
}

func TestUpdateCustomPost(t *testing.T) {
	s, _ := newStore(t)
	created, err := s.AddCustomPost(models.PostInput{Title: "title", Body: "body", UserID: 4})
	require.NoError(t, err)

	updated, ok, err := s.UpdateCustomPost(created.ID, models.PostPatch{Title: strPtr("new title")})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "body", updated.Body)
	assert.Equal(t, 4, updated.UserID)
	assert.Equal(t, updated, s.GetCustomPosts()[0])

	_, ok, err = s.UpdateCustomPost(42, models.PostPatch{Title: strPtr("x")})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteCustomPost(t *testing.T) {
	s, _ := newStore(t)
	created, err := s.AddCustomPost(models.PostInput{Title: "t"})
	require.NoError(t, err)

	removed, err := s.DeleteCustomPost(created.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, s.GetCustomPosts())
	assert.Contains(t, s.GetDeletedPostIDs(), created.ID)

	removed, err = s.DeleteCustomPost(7)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NotContains(t, s.GetDeletedPostIDs(), 7)
}

func TestMarkDeletedDeduplicates(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.MarkDeleted(2))
	require.NoError(t, s.MarkDeleted(2))
	require.NoError(t, s.MarkDeleted(5))

	assert.Equal(t, []int{2, 5}, s.GetDeletedPostIDs())
}

func TestCorruptSlotsReadAsEmpty(t *testing.T) {
	s, slots := newStore(t)
	require.NoError(t, slots.MemorySlots.Set(DefaultKeys().Posts, "{not json"))
	require.NoError(t, slots.MemorySlots.Set(DefaultKeys().Deleted, `[3,3,"x"`))

	assert.Empty(t, s.GetCustomPosts())
	assert.Empty(t, s.GetDeletedPostIDs())

	p, err := s.AddCustomPost(models.PostInput{Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, 10001, p.ID)
}

func TestDuplicatesInDeletedSlotAreCollapsed(t *testing.T) {
	s, slots := newStore(t)
	require.NoError(t, slots.MemorySlots.Set(DefaultKeys().Deleted, `[3,3,1,3]`))

	assert.Equal(t, []int{3, 1}, s.GetDeletedPostIDs())
}

func TestWriteFailuresAreReported(t *testing.T) {
	s, slots := newStore(t)
	created, err := s.AddCustomPost(models.PostInput{Title: "t"})
	require.NoError(t, err)

	slots.failSet = true

	_, err = s.AddCustomPost(models.PostInput{Title: "u"})
	assert.ErrorIs(t, err, errBroken)

	_, ok, err := s.UpdateCustomPost(created.ID, models.PostPatch{Title: strPtr("v")})
	assert.True(t, ok)
	assert.ErrorIs(t, err, errBroken)

	assert.ErrorIs(t, s.MarkDeleted(9), errBroken)

	_, err = s.DeleteCustomPost(created.ID)
	assert.ErrorIs(t, err, errBroken)

	slots.failSet = false
	assert.Len(t, s.GetCustomPosts(), 1)
}

func TestReadFailuresDegradeToEmpty(t *testing.T) {
	s, slots := newStore(t)
	_, err := s.AddCustomPost(models.PostInput{Title: "t"})
	require.NoError(t, err)

	slots.failGet = true
	assert.Empty(t, s.GetCustomPosts())
	assert.Empty(t, s.GetDeletedPostIDs())
}

func TestClearAllData(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.AddCustomPost(models.PostInput{Title: "t"})
	require.NoError(t, err)
	require.NoError(t, s.MarkDeleted(3))

	require.NoError(t, s.ClearAllData())

	assert.Empty(t, s.GetCustomPosts())
	assert.Empty(t, s.GetDeletedPostIDs())
}

func TestCustomKeys(t *testing.T) {
	slots := storage.NewMemorySlots()
	s := NewLocalStore(slots, Keys{Posts: "p"})
	_, err := s.AddCustomPost(models.PostInput{Title: "t"})
	require.NoError(t, err)
	require.NoError(t, s.MarkDeleted(1))

	_, ok, _ := slots.Get("p")
	assert.True(t, ok)
	_, ok, _ = slots.Get("interbank_deleted_posts")
	assert.True(t, ok)
}
