package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathology-case-server/internal/models"
)

type editorOp struct {
	Kind   string         `json:"kind"`
	Points []models.Point `json:"points"`
	Start  models.Point   `json:"start"`
	End    models.Point   `json:"end"`
	Center models.Point   `json:"center"`
	Radius float64        `json:"radius"`
}

type editorStateBody struct {
	CaseID      string                `json:"caseId"`
	Tool        string                `json:"tool"`
	Zoom        float64               `json:"zoom"`
	Pan         models.Point          `json:"pan"`
	Drawing     bool                  `json:"drawing"`
	Annotations models.AnnotationList `json:"annotations"`
	Ops         []editorOp            `json:"ops"`
}

type caseAnnotations struct {
	ID          string                `json:"id"`
	Annotations models.AnnotationList `json:"annotations"`
}

func openEditor(t *testing.T, s *testServer, token, caseID string) editorStateBody {
	t.Helper()
	w := s.request(t, http.MethodPost, "/api/cases/"+caseID+"/editor", token, map[string]float64{
		"viewportWidth":  800,
		"viewportHeight": 600,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var state editorStateBody
	decodeData(t, w, &state)
	return state
}

func editorEvent(t *testing.T, s *testServer, token, caseID string, event map[string]interface{}) editorStateBody {
	t.Helper()
	w := s.request(t, http.MethodPost, "/api/cases/"+caseID+"/editor/events", token, event)
	require.Equal(t, http.StatusOK, w.Code)

	var state editorStateBody
	decodeData(t, w, &state)
	return state
}

func TestEditorSessionCommitsShapesToCase(t *testing.T) {
	s := newTestServer(t)
	token := s.tokenFor(t, "u1")

	state := openEditor(t, s, token, "c1")
	assert.Equal(t, "c1", state.CaseID)
	assert.Equal(t, 1.0, state.Zoom)
	assert.Empty(t, state.Annotations)

	editorEvent(t, s, token, "c1", map[string]interface{}{"type": "tool", "tool": "rectangle"})
	editorEvent(t, s, token, "c1", map[string]interface{}{"type": "pointerdown", "x": 100, "y": 100})
	editorEvent(t, s, token, "c1", map[string]interface{}{"type": "pointermove", "x": 220, "y": 180})
	state = editorEvent(t, s, token, "c1", map[string]interface{}{"type": "pointerup"})
	require.Len(t, state.Annotations, 1)

	w := s.request(t, http.MethodGet, "/api/cases/c1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got caseAnnotations
	decodeData(t, w, &got)
	require.Len(t, got.Annotations, 1)
	rect, ok := got.Annotations[0].(models.RectangleAnnotation)
	require.True(t, ok)
	assert.Equal(t, models.Point{X: 100, Y: 100}, rect.Start)
	assert.Equal(t, models.Point{X: 220, Y: 180}, rect.End)
}

func TestEditorWheelZoomScalesDrawOps(t *testing.T) {
	s := newTestServer(t)
	token := s.tokenFor(t, "u1")

	w := s.request(t, http.MethodPut, "/api/cases/c1/annotations", token, []map[string]interface{}{{
		"id": "a1", "type": "circle", "color": "#ef4444", "strokeWidth": 2,
		"center": map[string]float64{"x": 100, "y": 100}, "radius": 10,
	}})
	require.Equal(t, http.StatusOK, w.Code)

	state := openEditor(t, s, token, "c1")
	require.Len(t, state.Ops, 1)
	assert.Equal(t, "circle", state.Ops[0].Kind)

	state = editorEvent(t, s, token, "c1", map[string]interface{}{
		"type": "wheel", "deltaY": -100, "x": 0, "y": 0,
	})
	assert.InDelta(t, 1.1, state.Zoom, 1e-9)
	require.Len(t, state.Ops, 1)
	assert.InDelta(t, 110, state.Ops[0].Center.X, 1e-9)
	assert.InDelta(t, 110, state.Ops[0].Center.Y, 1e-9)
	assert.InDelta(t, 11, state.Ops[0].Radius, 1e-9)
}

func TestEditorDeleteAndClearUpdateCase(t *testing.T) {
	s := newTestServer(t)
	token := s.tokenFor(t, "u1")

	w := s.request(t, http.MethodPut, "/api/cases/c1/annotations", token, []map[string]interface{}{
		{"id": "a1", "type": "pen", "color": "#ef4444", "strokeWidth": 2,
			"points": []map[string]float64{{"x": 1, "y": 1}, {"x": 2, "y": 2}}},
		{"id": "a2", "type": "circle", "color": "#ef4444", "strokeWidth": 2,
			"center": map[string]float64{"x": 5, "y": 5}, "radius": 3},
	})
	require.Equal(t, http.StatusOK, w.Code)

	openEditor(t, s, token, "c1")

	w = s.request(t, http.MethodDelete, "/api/cases/c1/editor/annotations/a1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got caseAnnotations
	w = s.request(t, http.MethodGet, "/api/cases/c1", token, nil)
	decodeData(t, w, &got)
	require.Len(t, got.Annotations, 1)
	assert.Equal(t, "a2", got.Annotations[0].AnnotationID())

	w = s.request(t, http.MethodDelete, "/api/cases/c1/editor/annotations", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.request(t, http.MethodGet, "/api/cases/c1", token, nil)
	decodeData(t, w, &got)
	assert.Empty(t, got.Annotations)
}

func TestEditorEventsRequireOpenSession(t *testing.T) {
	s := newTestServer(t)
	token := s.tokenFor(t, "u1")

	w := s.request(t, http.MethodPost, "/api/cases/c1/editor/events", token, map[string]interface{}{
		"type": "pointerup",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditorOpenRejectsUnknownCase(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodPost, "/api/cases/nope/editor", s.tokenFor(t, "u1"), map[string]float64{
		"viewportWidth": 800, "viewportHeight": 600,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditorRejectsUnknownEventType(t *testing.T) {
	s := newTestServer(t)
	token := s.tokenFor(t, "u1")
	openEditor(t, s, token, "c1")

	w := s.request(t, http.MethodPost, "/api/cases/c1/editor/events", token, map[string]interface{}{
		"type": "doubleclick",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditorRequiresManagePermission(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodPost, "/api/cases/c1/editor", s.tokenFor(t, "u2"), map[string]float64{
		"viewportWidth": 800, "viewportHeight": 600,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEditorCloseSession(t *testing.T) {
	s := newTestServer(t)
	token := s.tokenFor(t, "u1")
	openEditor(t, s, token, "c1")

	w := s.request(t, http.MethodDelete, "/api/cases/c1/editor", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.request(t, http.MethodDelete, "/api/cases/c1/editor", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
