package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javaloayza/postboard/middleware"
	"github.com/javaloayza/postboard/models"
	"github.com/javaloayza/postboard/projector"
	"github.com/javaloayza/postboard/reconcile"
	"github.com/javaloayza/postboard/utils"
)

// PostController exposes the reconciled post collection and its mutations.
type PostController struct {
	engine *reconcile.Engine
	// OnMutation, when set, runs after every successful create, update or delete.
	OnMutation func()
}

// NewPostController creates a new PostController instance.
func NewPostController(engine *reconcile.Engine) *PostController {
	return &PostController{engine: engine}
}

type postListItem struct {
	models.EnrichedPost
	Excerpt string `json:"excerpt"`
	reconcile.Permissions
}

type postDetail struct {
	models.PostWithComments
	reconcile.Permissions
	Initials       string `json:"initials"`
	AvatarFallback string `json:"avatarFallback"`
}

type postResult struct {
	models.Post
	reconcile.Permissions
}

// ListPosts returns one page of the enriched collection, optionally filtered by search.
func (p *PostController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	search := strings.TrimSpace(ctx.Query("search"))
	actor := middleware.ActorID(ctx, p.engine.CurrentUserID())

	posts, err := p.engine.GetEnrichedPosts(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, projector.LoadErrorMessage)
		return
	}

	filtered := projector.Filter(posts, search)
	window := projector.Paginate(filtered, page, pageSize)
	items := make([]postListItem, 0, len(window))
	for _, ep := range window {
		items = append(items, postListItem{
			EnrichedPost: ep,
			Excerpt:      utils.Truncate(ep.Body, utils.ExcerptLength),
			Permissions:  reconcile.PermissionsFor(actor, ep.Post),
		})
	}

	utils.Success(ctx, gin.H{
		"items":      items,
		"search":     search,
		"pagination": projector.Info(page, len(filtered), pageSize),
	})
}

// GetPost returns a single post with its author and comments.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	actor := middleware.ActorID(ctx, p.engine.CurrentUserID())

	detail, err := p.engine.GetPostWithComments(ctx.Request.Context(), id)
	if err != nil {
		p.respondError(ctx, err)
		return
	}
	utils.Success(ctx, postDetail{
		PostWithComments: detail,
		Permissions:      reconcile.PermissionsFor(actor, detail.Post),
		Initials:         reconcile.Initials(detail.User.Name),
		AvatarFallback:   reconcile.AvatarFallbackURL(detail.User.Name),
	})
}

// CreatePost creates a local post. The author defaults to the acting user.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeBadRequest, "invalid request payload")
		return
	}
	req.sanitize()
	if errs := validateCreate(req); len(errs) > 0 {
		utils.ErrorWithData(ctx, http.StatusBadRequest, utils.CodeValidation, "validation failed", errs)
		return
	}

	in := models.PostInput{Title: *req.Title, Body: *req.Body}
	if req.UserID != nil {
		in.UserID = *req.UserID
	} else {
		in.UserID = middleware.ActorID(ctx, p.engine.CurrentUserID())
	}

	post, err := p.engine.CreatePost(ctx.Request.Context(), in)
	if err != nil {
		p.respondError(ctx, err)
		return
	}
	p.mutated()
	utils.Created(ctx, postResult{Post: post, Permissions: reconcile.PermissionsFor(in.UserID, post)})
}

// UpdatePost applies a partial update. Remote posts answer with the echoed
// result, which is not kept.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeBadRequest, "invalid request payload")
		return
	}
	req.sanitize()
	patch := req.patch()
	if patch.IsEmpty() {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "nothing to update")
		return
	}
	if errs := validateUpdate(req); len(errs) > 0 {
		utils.ErrorWithData(ctx, http.StatusBadRequest, utils.CodeValidation, "validation failed", errs)
		return
	}

	actor := middleware.ActorID(ctx, p.engine.CurrentUserID())
	current, err := p.engine.GetPostByID(ctx.Request.Context(), id)
	if err != nil {
		p.respondError(ctx, err)
		return
	}
	if !reconcile.CanEdit(actor, current) {
		utils.Error(ctx, http.StatusForbidden, utils.CodeForbidden, "you can only update your own posts")
		return
	}
	if !patch.Changes(current) {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeValidation, "no changes to save")
		return
	}

	post, err := p.engine.UpdatePost(ctx.Request.Context(), id, patch)
	if err != nil {
		p.respondError(ctx, err)
		return
	}
	p.mutated()
	utils.Success(ctx, postResult{Post: post, Permissions: reconcile.PermissionsFor(actor, post)})
}

// DeletePost removes a local post or hides a remote one.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	actor := middleware.ActorID(ctx, p.engine.CurrentUserID())

	current, err := p.engine.GetPostByID(ctx.Request.Context(), id)
	if err != nil {
		p.respondError(ctx, err)
		return
	}
	if !reconcile.CanDelete(actor, current) {
		utils.Error(ctx, http.StatusForbidden, utils.CodeForbidden, "you can only delete your own posts")
		return
	}
	if err := p.engine.DeletePost(ctx.Request.Context(), id); err != nil {
		p.respondError(ctx, err)
		return
	}
	p.mutated()
	utils.Success(ctx, gin.H{"id": id, "deleted": true})
}

func (p *PostController) mutated() {
	if p.OnMutation != nil {
		p.OnMutation()
	}
}

// respondError maps engine errors onto the response envelope.
func (p *PostController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, reconcile.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, utils.CodeNotFound, "post not found")
	case errors.Is(err, reconcile.ErrUnwritable):
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeUnwritable, "failed to save local changes")
	default:
		utils.S().Errorw("unexpected post error", "error", err)
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeInternal, "internal server error")
	}
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := projector.ItemsPerPage
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

// parseID reads the :id path parameter, answering 400 itself when it is invalid.
func parseID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
