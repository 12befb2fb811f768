// Package projector derives the searchable, paginated view of the reconciled
// posts and exposes navigation as state transitions.
package projector

import (
	"context"
	"sync"

	"github.com/javaloayza/postboard/models"
	"github.com/javaloayza/postboard/utils"
)

// LoadErrorMessage is shown when a refresh fails.
const LoadErrorMessage = "Failed to load posts. Please try again."

// Source produces the enriched, reconciled collection.
type Source interface {
	GetEnrichedPosts(ctx context.Context) ([]models.EnrichedPost, error)
}

// Snapshot is the derived view handed to the presentation layer.
type Snapshot struct {
	Loading    bool                  `json:"loading"`
	Error      *string               `json:"error"`
	SearchTerm string                `json:"searchTerm"`
	Posts      []models.EnrichedPost `json:"posts"`
	Pagination PaginationInfo        `json:"pagination"`
}

// Projector holds the view state of a single viewer.
// Posts from a failed refresh are kept (stale while error).
type Projector struct {
	source Source

	mu          sync.Mutex
	loading     bool
	err         *string
	searchTerm  string
	currentPage int
	posts       []models.EnrichedPost
	// bumped by every Refresh; only the latest may publish
	generation uint64
}

// New returns a projector in the loading state; call Refresh to populate it.
func New(source Source) *Projector {
	return &Projector{source: source, loading: true, currentPage: 1, posts: []models.EnrichedPost{}}
}

// Refresh reloads the collection. A refresh superseded by a newer one is discarded.
func (p *Projector) Refresh(ctx context.Context) Snapshot {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	src := p.source
	p.loading = true
	p.err = nil
	p.mu.Unlock()

	posts, err := src.GetEnrichedPosts(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		utils.S().Debugw("stale refresh discarded", "generation", gen, "latest", p.generation)
		return p.snapshotLocked()
	}
	p.loading = false
	if err != nil {
		msg := LoadErrorMessage
		p.err = &msg
		utils.S().Warnw("refresh failed, keeping previous posts", "error", err)
		return p.snapshotLocked()
	}
	p.posts = posts
	return p.snapshotLocked()
}

// Search sets the term and resets to the first page.
func (p *Projector) Search(term string) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searchTerm = term
	p.currentPage = 1
	return p.snapshotLocked()
}

// GoToPage moves to page n; out-of-range pages leave the state unchanged.
func (p *Projector) GoToPage(n int) (Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n < 1 || n > p.totalPagesLocked() {
		return p.snapshotLocked(), false
	}
	p.currentPage = n
	return p.snapshotLocked(), true
}

func (p *Projector) NextPage() (Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentPage >= p.totalPagesLocked() {
		return p.snapshotLocked(), false
	}
	p.currentPage++
	return p.snapshotLocked(), true
}

func (p *Projector) PreviousPage() (Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentPage <= 1 {
		return p.snapshotLocked(), false
	}
	p.currentPage--
	return p.snapshotLocked(), true
}

func (p *Projector) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Projector) totalPagesLocked() int {
	return TotalPages(len(Filter(p.posts, p.searchTerm)), ItemsPerPage)
}

func (p *Projector) snapshotLocked() Snapshot {
	filtered := Filter(p.posts, p.searchTerm)
	var errCopy *string
	if p.err != nil {
		msg := *p.err
		errCopy = &msg
	}
	return Snapshot{
		Loading:    p.loading,
		Error:      errCopy,
		SearchTerm: p.searchTerm,
		Posts:      Paginate(filtered, p.currentPage, ItemsPerPage),
		Pagination: Info(p.currentPage, len(filtered), ItemsPerPage),
	}
}
