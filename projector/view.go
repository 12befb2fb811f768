package projector

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/javaloayza/postboard/models"
)

// ItemsPerPage is the fixed page size of the view.
const ItemsPerPage = 10

// PaginationInfo describes the visible window of the filtered collection.
type PaginationInfo struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	StartItem   int  `json:"startItem"`
	EndItem     int  `json:"endItem"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// Filter keeps posts whose title, body, author name or author email contains
// term, ignoring case. A blank term keeps everything.
func Filter(posts []models.EnrichedPost, term string) []models.EnrichedPost {
	// a Caser carries state; one per call
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))
	if needle == "" {
		return posts
	}
	out := make([]models.EnrichedPost, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(fold.String(p.Title), needle) ||
			strings.Contains(fold.String(p.Body), needle) ||
			strings.Contains(fold.String(p.User.Name), needle) ||
			strings.Contains(fold.String(p.User.Email), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Paginate returns the [(page-1)*perPage, page*perPage) window, clamped to posts.
func Paginate(posts []models.EnrichedPost, page, perPage int) []models.EnrichedPost {
	if page < 1 || perPage < 1 {
		return []models.EnrichedPost{}
	}
	start := (page - 1) * perPage
	if start >= len(posts) {
		return []models.EnrichedPost{}
	}
	end := start + perPage
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end]
}

// TotalPages is ceil(total / perPage), zero for an empty collection.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage < 1 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Info builds the pagination summary. Start and end items clamp to [0, total].
func Info(page, total, perPage int) PaginationInfo {
	pages := TotalPages(total, perPage)
	return PaginationInfo{
		CurrentPage: page,
		TotalPages:  pages,
		TotalItems:  total,
		StartItem:   min((page-1)*perPage+1, total),
		EndItem:     min(page*perPage, total),
		HasNext:     page < pages,
		HasPrevious: page > 1,
	}
}
