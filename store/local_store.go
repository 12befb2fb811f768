// Package store keeps locally created posts and the set of hidden remote post ids
// in two named slots, and allocates synthetic ids for new posts.
package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/javaloayza/postboard/models"
	"github.com/javaloayza/postboard/storage"
	"github.com/javaloayza/postboard/utils"
)

// Keys names the two slots the store persists into.
type Keys struct {
	Posts   string
	Deleted string
}

// DefaultKeys returns the slot names used by the browser build of the app.
func DefaultKeys() Keys {
	return Keys{Posts: "interbank_custom_posts", Deleted: "interbank_deleted_posts"}
}

// LocalStore is the record store for local posts.
// Reads never fail: absent or corrupt slots read as empty and are logged.
// Writes log and return the failure so mutation paths can surface it.
type LocalStore struct {
	slots storage.Slots
	keys  Keys
	// serializes read-modify-write sequences
	mu sync.Mutex
}

func NewLocalStore(slots storage.Slots, keys Keys) *LocalStore {
	if keys.Posts == "" || keys.Deleted == "" {
		def := DefaultKeys()
		if keys.Posts == "" {
			keys.Posts = def.Posts
		}
		if keys.Deleted == "" {
			keys.Deleted = def.Deleted
		}
	}
	return &LocalStore{slots: slots, keys: keys}
}

// GetCustomPosts returns every locally stored post in insertion order.
func (s *LocalStore) GetCustomPosts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPosts()
}

// AddCustomPost allocates the next synthetic id, appends the post and persists.
func (s *LocalStore) AddCustomPost(in models.PostInput) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.readPosts()
	post := models.Post{
		ID:     nextID(posts, s.readDeleted()),
		UserID: in.UserID,
		Title:  in.Title,
		Body:   in.Body,
	}
	if err := s.writePosts(append(posts, post)); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// UpdateCustomPost merges patch into the local post with id.
// The bool is false when no such local post exists; that is not an error.
func (s *LocalStore) UpdateCustomPost(id int, patch models.PostPatch) (models.Post, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.readPosts()
	for i, p := range posts {
		if p.ID != id {
			continue
		}
		posts[i] = patch.Apply(p)
		if err := s.writePosts(posts); err != nil {
			return models.Post{}, true, err
		}
		return posts[i], true, nil
	}
	return models.Post{}, false, nil
}

// DeleteCustomPost removes the local post with id and records id as deleted.
// It reports whether a post was removed. A failure to record the id after a
// successful removal is logged only, since the post is already gone.
func (s *LocalStore) DeleteCustomPost(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.readPosts()
	kept := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(posts) {
		return false, nil
	}
	if err := s.writePosts(kept); err != nil {
		return false, err
	}
	if err := s.addDeleted(id); err != nil {
		utils.S().Warnw("local post removed but deleted id not recorded", "id", id, "error", err)
	}
	return true, nil
}

// GetDeletedPostIDs returns the deduplicated deleted-id set.
func (s *LocalStore) GetDeletedPostIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readDeleted()
}

// MarkDeleted adds id to the deleted-id set. Used to hide remote posts.
func (s *LocalStore) MarkDeleted(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addDeleted(id)
}

// ClearAllData erases both slots.
func (s *LocalStore) ClearAllData() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, key := range []string{s.keys.Posts, s.keys.Deleted} {
		if err := s.slots.Remove(key); err != nil {
			utils.S().Errorw("clear local slot failed", "key", key, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("clear %s: %w", key, err)
			}
		}
	}
	return firstErr
}

// nextID is max(local ids, deleted ids in the local range, floor-1) + 1,
// so ids keep increasing even after the newest local post is deleted.
func nextID(posts []models.Post, deleted []int) int {
	maxID := models.LocalIDFloor - 1
	for _, p := range posts {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	for _, id := range deleted {
		if models.IsLocalID(id) && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func (s *LocalStore) addDeleted(id int) error {
	ids := s.readDeleted()
	if utils.Contains(ids, id) {
		return nil
	}
	return s.write(s.keys.Deleted, append(ids, id))
}

func (s *LocalStore) readPosts() []models.Post {
	var posts []models.Post
	if !s.read(s.keys.Posts, &posts) || posts == nil {
		return []models.Post{}
	}
	return posts
}

func (s *LocalStore) readDeleted() []int {
	var ids []int
	if !s.read(s.keys.Deleted, &ids) {
		return []int{}
	}
	return utils.Unique(ids)
}

func (s *LocalStore) writePosts(posts []models.Post) error {
	return s.write(s.keys.Posts, posts)
}

// read decodes slot key into out. It returns false for absent, unreadable or corrupt slots.
func (s *LocalStore) read(key string, out interface{}) bool {
	raw, ok, err := s.slots.Get(key)
	if err != nil {
		utils.S().Warnw("read local slot failed", "key", key, "error", err)
		return false
	}
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		utils.S().Warnw("corrupt local slot ignored", "key", key, "error", err)
		return false
	}
	return true
}

func (s *LocalStore) write(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.slots.Set(key, string(data)); err != nil {
		utils.S().Errorw("write local slot failed", "key", key, "error", err)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
