// Package reconcile merges remote posts with the local record store into one
// collection and routes mutations by provenance.
package reconcile

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/javaloayza/postboard/metrics"
	"github.com/javaloayza/postboard/models"
	"github.com/javaloayza/postboard/utils"
)

// Remote is the read gateway the engine consumes.
type Remote interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int) (models.Post, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int) (models.User, error)
	ListComments(ctx context.Context, postID int) ([]models.Comment, error)
	UpdatePost(ctx context.Context, post models.Post) (models.Post, error)
}

// Local is the record store the engine consumes.
type Local interface {
	GetCustomPosts() []models.Post
	AddCustomPost(in models.PostInput) (models.Post, error)
	UpdateCustomPost(id int, patch models.PostPatch) (models.Post, bool, error)
	DeleteCustomPost(id int) (bool, error)
	GetDeletedPostIDs() []int
	MarkDeleted(id int) error
	ClearAllData() error
}

// Engine is stateless apart from its collaborators; it is safe for concurrent use
// as long as Local is.
type Engine struct {
	remote        Remote
	local         Local
	currentUserID int
}

func NewEngine(remote Remote, local Local, currentUserID int) *Engine {
	return &Engine{remote: remote, local: local, currentUserID: currentUserID}
}

// CurrentUserID is the default actor and the default author of new posts.
func (e *Engine) CurrentUserID() int {
	return e.currentUserID
}

// Diagnostics summarizes the local layer.
type Diagnostics struct {
	CustomPostCount  int           `json:"customPostCount"`
	DeletedPostCount int           `json:"deletedPostCount"`
	CustomPosts      []models.Post `json:"customPosts"`
	DeletedIDs       []int         `json:"deletedIds"`
}

// GetAllPosts returns remote posts minus deleted ids plus local posts, newest id first.
// A remote failure degrades to local-only content; the only error is ctx cancellation.
func (e *Engine) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.ReconcileDuration)

	remote, err := e.remote.ListPosts(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		utils.S().Warnw("remote posts unavailable, serving local posts only", "error", err)
		remote = nil
	}

	local := e.local.GetCustomPosts()
	deleted := e.local.GetDeletedPostIDs()
	metrics.LocalPosts.Set(float64(len(local)))
	metrics.DeletedPosts.Set(float64(len(deleted)))

	merged, collisions := Merge(remote, local, deleted)
	if collisions > 0 {
		metrics.RemoteIDCollisions.Add(float64(collisions))
		utils.S().Warnw("remote posts dropped: ids inside the local range", "count", collisions, "floor", models.LocalIDFloor)
	}
	return merged, nil
}

// Merge reconciles one remote snapshot with the local layer.
// Remote posts whose id is deleted, duplicated, or inside the local id range are
// dropped; the latter are counted in collisions. The result is sorted by id descending.
func Merge(remote, local []models.Post, deleted []int) (merged []models.Post, collisions int) {
	hidden := make(map[int]struct{}, len(deleted))
	for _, id := range deleted {
		hidden[id] = struct{}{}
	}

	seen := make(map[int]struct{}, len(remote)+len(local))
	merged = make([]models.Post, 0, len(remote)+len(local))
	for _, p := range local {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		merged = append(merged, p)
	}
	for _, p := range remote {
		if p.IsLocal() {
			collisions++
			continue
		}
		if _, gone := hidden[p.ID]; gone {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		merged = append(merged, p)
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].ID > merged[j].ID })
	return merged, collisions
}

// GetPostByID looks in the local store first and only then asks the remote.
// Ids in the local range and deleted ids never reach the network.
func (e *Engine) GetPostByID(ctx context.Context, id int) (models.Post, error) {
	if post, ok := e.findLocal(id); ok {
		return post, nil
	}
	if models.IsLocalID(id) || e.isDeleted(id) {
		return models.Post{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	post, err := e.remote.GetPost(ctx, id)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %d: %w", ErrNotFound, id, err)
	}
	return post, nil
}

// CreatePost always creates locally. A zero UserID defaults to the current user.
func (e *Engine) CreatePost(ctx context.Context, in models.PostInput) (models.Post, error) {
	if in.UserID == 0 {
		in.UserID = e.currentUserID
	}
	post, err := e.local.AddCustomPost(in)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("create", "local", "error").Inc()
		return models.Post{}, fmt.Errorf("%w: %w", ErrUnwritable, err)
	}
	metrics.MutationsTotal.WithLabelValues("create", "local", "ok").Inc()
	utils.S().Infow("local post created", "id", post.ID, "userId", post.UserID)
	return post, nil
}

// UpdatePost patches a local post in place. Remote posts are sent to the remote
// as a full PUT whose echo is returned but not kept anywhere.
func (e *Engine) UpdatePost(ctx context.Context, id int, patch models.PostPatch) (models.Post, error) {
	post, found, err := e.local.UpdateCustomPost(id, patch)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("update", "local", "error").Inc()
		return models.Post{}, fmt.Errorf("%w: %w", ErrUnwritable, err)
	}
	if found {
		metrics.MutationsTotal.WithLabelValues("update", "local", "ok").Inc()
		return post, nil
	}
	if models.IsLocalID(id) || e.isDeleted(id) {
		return models.Post{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	current, err := e.remote.GetPost(ctx, id)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("update", "remote", "error").Inc()
		return models.Post{}, fmt.Errorf("%w: %d: %w", ErrNotFound, id, err)
	}
	echoed, err := e.remote.UpdatePost(ctx, patch.Apply(current))
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("update", "remote", "error").Inc()
		return models.Post{}, fmt.Errorf("%w: %d: %w", ErrNotFound, id, err)
	}
	metrics.MutationsTotal.WithLabelValues("update", "remote", "ok").Inc()
	return echoed, nil
}

// DeletePost removes a local post, or hides a remote one by recording its id.
func (e *Engine) DeletePost(ctx context.Context, id int) error {
	removed, err := e.local.DeleteCustomPost(id)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("delete", "local", "error").Inc()
		return fmt.Errorf("%w: %w", ErrUnwritable, err)
	}
	if removed {
		metrics.MutationsTotal.WithLabelValues("delete", "local", "ok").Inc()
		return nil
	}
	if models.IsLocalID(id) {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err := e.local.MarkDeleted(id); err != nil {
		metrics.MutationsTotal.WithLabelValues("delete", "remote", "error").Inc()
		return fmt.Errorf("%w: %w", ErrUnwritable, err)
	}
	metrics.MutationsTotal.WithLabelValues("delete", "remote", "ok").Inc()
	utils.S().Infow("remote post hidden", "id", id)
	return nil
}

// GetEnrichedPosts joins GetAllPosts with the remote user list. Both are fetched
// concurrently; a failed user fetch falls back to default users.
func (e *Engine) GetEnrichedPosts(ctx context.Context) ([]models.EnrichedPost, error) {
	var (
		posts []models.Post
		users []models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = e.GetAllPosts(gctx)
		return err
	})
	g.Go(func() error {
		users = e.GetUsers(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[int]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	enriched := make([]models.EnrichedPost, 0, len(posts))
	for _, p := range posts {
		user, ok := byID[p.UserID]
		if !ok {
			user = models.DefaultUser(p.UserID)
		}
		enriched = append(enriched, Enrich(p, user))
	}
	return enriched, nil
}

// GetPostWithComments returns the detail view of a post. The author and the
// comments are fetched concurrently; local posts have no remote comments.
func (e *Engine) GetPostWithComments(ctx context.Context, id int) (models.PostWithComments, error) {
	post, err := e.GetPostByID(ctx, id)
	if err != nil {
		return models.PostWithComments{}, err
	}

	var (
		user     models.User
		comments []models.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		user = e.GetUser(gctx, post.UserID)
		return nil
	})
	g.Go(func() error {
		if post.IsLocal() {
			return nil
		}
		var err error
		comments, err = e.remote.ListComments(gctx, post.ID)
		if err != nil {
			utils.S().Warnw("comments unavailable", "postId", post.ID, "error", err)
			comments = nil
		}
		return nil
	})
	_ = g.Wait()

	if comments == nil {
		comments = []models.Comment{}
	}
	return models.PostWithComments{EnrichedPost: EnrichDetail(post, user), Comments: comments}, nil
}

// GetUsers returns the remote user list, or an empty list when the remote fails.
func (e *Engine) GetUsers(ctx context.Context) []models.User {
	users, err := e.remote.ListUsers(ctx)
	if err != nil {
		utils.S().Warnw("remote users unavailable", "error", err)
		return []models.User{}
	}
	return users
}

// GetUser returns the remote user, or a synthesized default user when the lookup fails.
func (e *Engine) GetUser(ctx context.Context, id int) models.User {
	user, err := e.remote.GetUser(ctx, id)
	if err != nil {
		utils.S().Debugw("remote user unavailable, using default", "userId", id, "error", err)
		return models.DefaultUser(id)
	}
	return user
}

func (e *Engine) Diagnostics() Diagnostics {
	posts := e.local.GetCustomPosts()
	deleted := e.local.GetDeletedPostIDs()
	return Diagnostics{
		CustomPostCount:  len(posts),
		DeletedPostCount: len(deleted),
		CustomPosts:      posts,
		DeletedIDs:       deleted,
	}
}

// ClearAllLocalData wipes local posts and the deleted-id set.
func (e *Engine) ClearAllLocalData() error {
	if err := e.local.ClearAllData(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnwritable, err)
	}
	metrics.LocalPosts.Set(0)
	metrics.DeletedPosts.Set(0)
	utils.S().Warn("all local data cleared")
	return nil
}

func (e *Engine) findLocal(id int) (models.Post, bool) {
	for _, p := range e.local.GetCustomPosts() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

func (e *Engine) isDeleted(id int) bool {
	return utils.Contains(e.local.GetDeletedPostIDs(), id)
}
