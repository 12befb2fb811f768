package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javaloayza/postboard/projector"
	"github.com/javaloayza/postboard/utils"
)

// ViewController drives the stateful single-viewer projection.
type ViewController struct {
	view     *projector.Projector
	debounce *projector.Debouncer
}

// NewViewController wires typed search input through a debouncer into view.
func NewViewController(view *projector.Projector, debounce *projector.Debouncer) *ViewController {
	return &ViewController{view: view, debounce: debounce}
}

type searchRequest struct {
	Term string `json:"term"`
}

// GetView returns the current snapshot.
func (v *ViewController) GetView(ctx *gin.Context) {
	utils.Success(ctx, v.view.Snapshot())
}

// Search commits a term immediately and resets to page 1.
func (v *ViewController) Search(ctx *gin.Context) {
	var req searchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeBadRequest, "invalid request payload")
		return
	}
	if v.debounce != nil {
		v.debounce.Commit(req.Term)
	}
	utils.Success(ctx, v.view.Search(req.Term))
}

// Input feeds a keystroke-level term; it is committed after the quiet period.
func (v *ViewController) Input(ctx *gin.Context) {
	var req searchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeBadRequest, "invalid request payload")
		return
	}
	v.debounce.Input(req.Term)
	utils.Respond(ctx, http.StatusAccepted, utils.CodeOK, "accepted", gin.H{"term": req.Term})
}

// GoToPage moves to page n. Out-of-range pages leave the view unchanged.
func (v *ViewController) GoToPage(ctx *gin.Context) {
	n, err := strconv.Atoi(ctx.Param("n"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeBadRequest, "invalid page")
		return
	}
	snap, _ := v.view.GoToPage(n)
	utils.Success(ctx, snap)
}

func (v *ViewController) NextPage(ctx *gin.Context) {
	snap, _ := v.view.NextPage()
	utils.Success(ctx, snap)
}

func (v *ViewController) PreviousPage(ctx *gin.Context) {
	snap, _ := v.view.PreviousPage()
	utils.Success(ctx, snap)
}

// Refresh reloads the collection. A failed load still answers 200 with the error banner set.
func (v *ViewController) Refresh(ctx *gin.Context) {
	utils.Success(ctx, v.view.Refresh(ctx.Request.Context()))
}
