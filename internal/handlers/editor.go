package handlers

import (
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathology-case-server/internal/annotation"
	"pathology-case-server/internal/models"
	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

// EditorHandler exposes the server-side slide annotation surface. Each case
// gets at most one editor session; pointer, wheel, and tool events are fed
// through the session's engine and every committed, deleted, or cleared
// shape is pushed straight into the owning case record through the case
// store. Responses carry the engine state plus the screen-space draw
// commands to replay.
type EditorHandler struct {
	log   *zap.Logger
	cases *store.CaseStore

	mu       sync.Mutex
	sessions map[string]*annotation.Editor
}

func NewEditorHandler(log *zap.Logger, cases *store.CaseStore) *EditorHandler {
	return &EditorHandler{log: log, cases: cases, sessions: make(map[string]*annotation.Editor)}
}

type openEditorRequest struct {
	ViewportWidth  float64 `json:"viewportWidth" validate:"required,gt=0"`
	ViewportHeight float64 `json:"viewportHeight" validate:"required,gt=0"`
}

type editorEventRequest struct {
	Type        string          `json:"type" validate:"required,oneof=pointerdown pointermove pointerup wheel tool color strokeWidth zoomIn zoomOut resetView viewport"`
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
	DeltaY      float64         `json:"deltaY"`
	Tool        annotation.Tool `json:"tool"`
	Color       string          `json:"color"`
	StrokeWidth float64         `json:"strokeWidth"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
}

// editorState is the response body for every editor endpoint.
type editorState struct {
	CaseID      string                `json:"caseId"`
	Tool        annotation.Tool       `json:"tool"`
	Zoom        float64               `json:"zoom"`
	Pan         models.Point          `json:"pan"`
	Drawing     bool                  `json:"drawing"`
	Annotations models.AnnotationList `json:"annotations"`
	Ops         []annotation.DrawOp   `json:"ops"`
}

func stateOf(caseID string, e *annotation.Editor) editorState {
	return editorState{
		CaseID:      caseID,
		Tool:        e.Tool(),
		Zoom:        e.Zoom(),
		Pan:         e.Pan(),
		Drawing:     e.IsDrawing(),
		Annotations: e.Annotations(),
		Ops:         e.Render(),
	}
}

// OpenSession loads a case's annotations into a fresh editor session. An
// existing session for the case is replaced.
func (h *EditorHandler) OpenSession(c *gin.Context) {
	id := c.Param("id")
	found, ok := h.cases.CaseByID(id)
	if !ok {
		utils.NotFound(c, "Case not found")
		return
	}

	var req openEditorRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	editor := annotation.NewEditor(h.cases)
	editor.Load(id, found.Annotations, req.ViewportWidth, req.ViewportHeight)
	h.sessions[id] = editor

	h.log.Info("editor session opened", zap.String("case", id))
	utils.Success(c, stateOf(id, editor))
}

// CloseSession discards the case's editor session. Committed shapes already
// live on the case record, so nothing is lost.
func (h *EditorHandler) CloseSession(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[id]; !ok {
		utils.NotFound(c, "No editor session for this case")
		return
	}
	delete(h.sessions, id)
	utils.NoContent(c)
}

// Event feeds one input event through the case's editor session and returns
// the resulting state.
func (h *EditorHandler) Event(c *gin.Context) {
	var req editorEventRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	id := c.Param("id")

	h.mu.Lock()
	defer h.mu.Unlock()

	editor, ok := h.sessions[id]
	if !ok {
		utils.NotFound(c, "No editor session for this case")
		return
	}

	switch req.Type {
	case "pointerdown":
		editor.PointerDown(models.Point{X: req.X, Y: req.Y})
	case "pointermove":
		editor.PointerMove(models.Point{X: req.X, Y: req.Y})
	case "pointerup":
		editor.PointerUp()
	case "wheel":
		editor.Wheel(req.DeltaY, models.Point{X: req.X, Y: req.Y})
	case "tool":
		editor.SelectTool(req.Tool)
	case "color":
		editor.SetColor(req.Color)
	case "strokeWidth":
		editor.SetStrokeWidth(req.StrokeWidth)
	case "zoomIn":
		editor.ZoomIn()
	case "zoomOut":
		editor.ZoomOut()
	case "resetView":
		editor.ResetView()
	case "viewport":
		editor.SetViewport(req.Width, req.Height)
	}

	utils.Success(c, stateOf(id, editor))
}

// DeleteAnnotation removes one shape through the editor, pushing the updated
// list to the case record.
func (h *EditorHandler) DeleteAnnotation(c *gin.Context) {
	h.withSession(c, func(editor *annotation.Editor) {
		editor.Delete(c.Param("annotationId"))
	})
}

// ClearAnnotations removes every shape through the editor.
func (h *EditorHandler) ClearAnnotations(c *gin.Context) {
	h.withSession(c, func(editor *annotation.Editor) {
		editor.Clear()
	})
}

func (h *EditorHandler) withSession(c *gin.Context, fn func(*annotation.Editor)) {
	id := c.Param("id")

	h.mu.Lock()
	defer h.mu.Unlock()

	editor, ok := h.sessions[id]
	if !ok {
		utils.NotFound(c, "No editor session for this case")
		return
	}
	fn(editor)
	utils.Success(c, stateOf(id, editor))
}
