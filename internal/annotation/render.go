package annotation

import (
	"pathology-case-server/internal/models"
)

// OpKind discriminates the draw command variants.
type OpKind string

const (
	OpPolyline OpKind = "polyline"
	OpRect     OpKind = "rect"
	OpCircle   OpKind = "circle"
)

// DrawOp is one screen-space stroke command. Stored shape geometry is
// image-local; Render applies the current transform when producing ops.
type DrawOp struct {
	Kind   OpKind         `json:"kind"`
	Color  string         `json:"color"`
	Width  float64        `json:"width"`
	Points []models.Point `json:"points,omitempty"`
	Start  models.Point   `json:"start,omitzero"`
	End    models.Point   `json:"end,omitzero"`
	Center models.Point   `json:"center,omitzero"`
	Radius float64        `json:"radius,omitempty"`
}

// Render produces the full ordered command list for the surface: every
// persisted annotation plus any in-progress shape, each carrying its stored
// color and width. The surface is expected to clear before replaying, so a
// render is always a complete redraw.
func (e *Editor) Render() []DrawOp {
	shapes := make(models.AnnotationList, 0, len(e.annotations)+1)
	shapes = append(shapes, e.annotations...)
	if e.current != nil {
		shapes = append(shapes, e.current)
	}

	ops := make([]DrawOp, 0, len(shapes))
	for _, anno := range shapes {
		switch shape := anno.(type) {
		case models.PenAnnotation:
			points := make([]models.Point, len(shape.Points))
			for i, p := range shape.Points {
				points[i] = e.imageToScreen(p)
			}
			ops = append(ops, DrawOp{
				Kind: OpPolyline, Color: shape.Color, Width: shape.StrokeWidth,
				Points: points,
			})
		case models.RectangleAnnotation:
			ops = append(ops, DrawOp{
				Kind: OpRect, Color: shape.Color, Width: shape.StrokeWidth,
				Start: e.imageToScreen(shape.Start), End: e.imageToScreen(shape.End),
			})
		case models.CircleAnnotation:
			ops = append(ops, DrawOp{
				Kind: OpCircle, Color: shape.Color, Width: shape.StrokeWidth,
				Center: e.imageToScreen(shape.Center), Radius: shape.Radius * e.zoom,
			})
		}
	}
	return ops
}
