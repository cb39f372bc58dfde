// Package annotation implements the slide annotation and viewport transform
// engine: freehand/shape capture over a zoomable, pannable slide image.
// Shape geometry lives in image-local coordinates; the viewport transform is
// applied only when translating pointer input and when rendering, which is
// what keeps annotations anchored to image content across zoom and pan.
package annotation

import (
	"math"
	"slices"

	"github.com/google/uuid"

	"pathology-case-server/internal/models"
)

const (
	// MinZoom is the fit-to-viewport zoom level; pan is pinned to the
	// origin here.
	MinZoom = 1.0
	// MaxZoom bounds wheel and button zoom.
	MaxZoom = 5.0

	wheelStep  = 1.1
	buttonStep = 1.2

	defaultColor       = "#ef4444"
	defaultStrokeWidth = 2.0
)

// Tool selects the active drawing shape. ToolNone switches pointer input to
// panning.
type Tool string

const (
	ToolNone      Tool = ""
	ToolPen       Tool = "pen"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
)

type mode int

const (
	modeIdle mode = iota
	modeDrawing
	modePanning
)

// Sink receives the updated annotation list on every commit, delete, or
// clear. The case store is the owning collaborator.
type Sink interface {
	UpdateAnnotations(caseID string, annotations models.AnnotationList)
}

// Editor is the per-case drawing surface state machine. It is single-actor:
// all input events arrive sequentially.
type Editor struct {
	sink   Sink
	caseID string

	viewportW float64
	viewportH float64
	zoom      float64
	pan       models.Point

	tool        Tool
	color       string
	strokeWidth float64

	mode        mode
	current     models.Annotation
	annotations models.AnnotationList

	dragStart models.Point // pointer position at drag start, screen space
	panStart  models.Point // pan value at drag start
}

// NewEditor creates an idle editor wired to the given sink.
func NewEditor(sink Sink) *Editor {
	return &Editor{
		sink:        sink,
		zoom:        MinZoom,
		color:       defaultColor,
		strokeWidth: defaultStrokeWidth,
	}
}

// Load points the editor at a case's annotation list and resets the view.
// The active tool and style survive case switches.
func (e *Editor) Load(caseID string, annotations models.AnnotationList, viewportW, viewportH float64) {
	e.caseID = caseID
	e.annotations = slices.Clone(annotations)
	e.viewportW = viewportW
	e.viewportH = viewportH
	e.mode = modeIdle
	e.current = nil
	e.ResetView()
}

// SetViewport updates the viewport dimensions and re-clamps the pan.
func (e *Editor) SetViewport(w, h float64) {
	e.viewportW = w
	e.viewportH = h
	e.pan = e.clampPan(e.zoom, e.pan)
}

// SelectTool activates the tool, or deactivates it when re-selected.
func (e *Editor) SelectTool(t Tool) {
	if e.tool == t {
		e.tool = ToolNone
		return
	}
	e.tool = t
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetColor sets the stroke color for new shapes.
func (e *Editor) SetColor(color string) { e.color = color }

// SetStrokeWidth sets the stroke width for new shapes.
func (e *Editor) SetStrokeWidth(w float64) { e.strokeWidth = w }

// Zoom returns the current zoom level.
func (e *Editor) Zoom() float64 { return e.zoom }

// Pan returns the current pan offset in screen pixels.
func (e *Editor) Pan() models.Point { return e.pan }

// IsDrawing reports whether a shape capture is in progress.
func (e *Editor) IsDrawing() bool { return e.mode == modeDrawing }

// IsPanning reports whether a pan drag is in progress.
func (e *Editor) IsPanning() bool { return e.mode == modePanning }

// Annotations returns a snapshot of the committed annotations.
func (e *Editor) Annotations() models.AnnotationList {
	return slices.Clone(e.annotations)
}

// screenToImage translates a viewport-relative pointer position into
// image-local coordinates through the current transform.
func (e *Editor) screenToImage(p models.Point) models.Point {
	return models.Point{
		X: (p.X - e.pan.X) / e.zoom,
		Y: (p.Y - e.pan.Y) / e.zoom,
	}
}

// imageToScreen applies the current transform to an image-local point.
func (e *Editor) imageToScreen(p models.Point) models.Point {
	return models.Point{
		X: p.X*e.zoom + e.pan.X,
		Y: p.Y*e.zoom + e.pan.Y,
	}
}

// PointerDown begins a shape capture when a tool is active, otherwise a pan
// drag. Pan drags are refused at minimum zoom since there is nothing to
// reveal.
func (e *Editor) PointerDown(p models.Point) {
	if e.tool != ToolNone {
		e.mode = modeDrawing
		start := e.screenToImage(p)
		id := uuid.New().String()

		switch e.tool {
		case ToolPen:
			e.current = models.PenAnnotation{
				ID: id, Color: e.color, StrokeWidth: e.strokeWidth,
				Points: []models.Point{start},
			}
		case ToolRectangle:
			e.current = models.RectangleAnnotation{
				ID: id, Color: e.color, StrokeWidth: e.strokeWidth,
				Start: start, End: start,
			}
		case ToolCircle:
			e.current = models.CircleAnnotation{
				ID: id, Color: e.color, StrokeWidth: e.strokeWidth,
				Center: start, Radius: 0,
			}
		}
		return
	}

	if e.zoom <= MinZoom {
		return
	}
	e.mode = modePanning
	e.dragStart = p
	e.panStart = e.pan
}

// PointerMove extends the in-progress shape, or moves the pan within the
// image bounds.
func (e *Editor) PointerMove(p models.Point) {
	switch e.mode {
	case modeDrawing:
		point := e.screenToImage(p)
		switch shape := e.current.(type) {
		case models.PenAnnotation:
			shape.Points = append(slices.Clone(shape.Points), point)
			e.current = shape
		case models.RectangleAnnotation:
			shape.End = point
			e.current = shape
		case models.CircleAnnotation:
			shape.Radius = math.Hypot(point.X-shape.Center.X, point.Y-shape.Center.Y)
			e.current = shape
		}
	case modePanning:
		e.pan = e.clampPan(e.zoom, models.Point{
			X: e.panStart.X + (p.X - e.dragStart.X),
			Y: e.panStart.Y + (p.Y - e.dragStart.Y),
		})
	}
}

// PointerUp commits the in-progress shape to the persisted list and ends
// any pan drag.
func (e *Editor) PointerUp() {
	if e.mode == modeDrawing && e.current != nil {
		e.annotations = append(e.annotations, e.current)
		e.save()
	}
	e.mode = modeIdle
	e.current = nil
}

// Wheel zooms multiplicatively anchored at the pointer position, so the
// image point under the cursor stays visually stationary. Reaching minimum
// zoom resets the pan to the origin.
func (e *Editor) Wheel(deltaY float64, at models.Point) {
	scale := wheelStep
	if deltaY > 0 {
		scale = 1 / wheelStep
	}

	oldZoom := e.zoom
	newZoom := math.Max(MinZoom, math.Min(MaxZoom, oldZoom*scale))
	if newZoom == oldZoom {
		return
	}
	if newZoom <= MinZoom {
		e.ResetView()
		return
	}

	e.pan = e.clampPan(newZoom, models.Point{
		X: at.X - ((at.X-e.pan.X)/oldZoom)*newZoom,
		Y: at.Y - ((at.Y-e.pan.Y)/oldZoom)*newZoom,
	})
	e.zoom = newZoom
}

// ZoomIn steps the zoom toward MaxZoom.
func (e *Editor) ZoomIn() {
	e.zoom = math.Min(MaxZoom, e.zoom*buttonStep)
	e.pan = e.clampPan(e.zoom, e.pan)
}

// ZoomOut steps the zoom toward MinZoom, resetting the view on arrival.
func (e *Editor) ZoomOut() {
	newZoom := math.Max(MinZoom, e.zoom/buttonStep)
	if newZoom <= MinZoom {
		e.ResetView()
		return
	}
	e.zoom = newZoom
	e.pan = e.clampPan(e.zoom, e.pan)
}

// ResetView restores the untransformed viewport.
func (e *Editor) ResetView() {
	e.zoom = MinZoom
	e.pan = models.Point{}
}

// IsViewReset reports whether the viewport is untransformed.
func (e *Editor) IsViewReset() bool {
	return e.zoom == MinZoom && e.pan == (models.Point{})
}

// clampPan keeps the visible region inside the image bounds at the given
// zoom. The pan range narrows to exactly the origin at minimum zoom.
func (e *Editor) clampPan(zoom float64, p models.Point) models.Point {
	if zoom <= MinZoom {
		return models.Point{}
	}
	minX := e.viewportW - e.viewportW*zoom
	minY := e.viewportH - e.viewportH*zoom
	return models.Point{
		X: math.Max(minX, math.Min(0, p.X)),
		Y: math.Max(minY, math.Min(0, p.Y)),
	}
}

// Delete removes an annotation by id and pushes the list to the sink.
func (e *Editor) Delete(annotationID string) {
	e.annotations = slices.DeleteFunc(slices.Clone(e.annotations), func(a models.Annotation) bool {
		return a.AnnotationID() == annotationID
	})
	e.save()
}

// Clear removes every annotation for the case.
func (e *Editor) Clear() {
	e.annotations = models.AnnotationList{}
	e.save()
}

func (e *Editor) save() {
	if e.sink != nil && e.caseID != "" {
		e.sink.UpdateAnnotations(e.caseID, slices.Clone(e.annotations))
	}
}
