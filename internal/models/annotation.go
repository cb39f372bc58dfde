package models

import (
	"encoding/json"
	"fmt"
)

// Point is a coordinate in image-local space. Annotation geometry is always
// stored unscaled; the viewport transform is applied only at render time.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AnnotationType discriminates the annotation shape variants.
type AnnotationType string

const (
	AnnotationPen       AnnotationType = "pen"
	AnnotationRectangle AnnotationType = "rectangle"
	AnnotationCircle    AnnotationType = "circle"
)

// Annotation is a user-drawn shape overlaid on a slide image. It is a sealed
// union over pen strokes, rectangles and circles; switch on Kind() and the
// concrete type at render and geometry-update sites.
type Annotation interface {
	AnnotationID() string
	Kind() AnnotationType
	sealed()
}

// PenAnnotation is a freehand stroke as an ordered point list.
type PenAnnotation struct {
	ID          string  `json:"id"`
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
	Points      []Point `json:"points"`
}

// RectangleAnnotation is an axis-aligned rectangle between two corners.
type RectangleAnnotation struct {
	ID          string  `json:"id"`
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
	Start       Point   `json:"start"`
	End         Point   `json:"end"`
}

// CircleAnnotation is a circle given by center and radius.
type CircleAnnotation struct {
	ID          string  `json:"id"`
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
	Center      Point   `json:"center"`
	Radius      float64 `json:"radius"`
}

func (a PenAnnotation) AnnotationID() string       { return a.ID }
func (a PenAnnotation) Kind() AnnotationType       { return AnnotationPen }
func (a PenAnnotation) sealed()                    {}
func (a RectangleAnnotation) AnnotationID() string { return a.ID }
func (a RectangleAnnotation) Kind() AnnotationType { return AnnotationRectangle }
func (a RectangleAnnotation) sealed()              {}
func (a CircleAnnotation) AnnotationID() string    { return a.ID }
func (a CircleAnnotation) Kind() AnnotationType    { return AnnotationCircle }
func (a CircleAnnotation) sealed()                 {}

// annotationEnvelope is the wire form carrying the type tag alongside the
// union of all shape fields.
type annotationEnvelope struct {
	ID          string         `json:"id"`
	Type        AnnotationType `json:"type"`
	Color       string         `json:"color"`
	StrokeWidth float64        `json:"strokeWidth"`
	Points      []Point        `json:"points,omitempty"`
	Start       *Point         `json:"start,omitempty"`
	End         *Point         `json:"end,omitempty"`
	Center      *Point         `json:"center,omitempty"`
	Radius      float64        `json:"radius,omitempty"`
}

// MarshalJSON adds the discriminating type tag.
func (a PenAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(annotationEnvelope{
		ID: a.ID, Type: AnnotationPen, Color: a.Color, StrokeWidth: a.StrokeWidth,
		Points: a.Points,
	})
}

func (a RectangleAnnotation) MarshalJSON() ([]byte, error) {
	start, end := a.Start, a.End
	return json.Marshal(annotationEnvelope{
		ID: a.ID, Type: AnnotationRectangle, Color: a.Color, StrokeWidth: a.StrokeWidth,
		Start: &start, End: &end,
	})
}

func (a CircleAnnotation) MarshalJSON() ([]byte, error) {
	center := a.Center
	return json.Marshal(annotationEnvelope{
		ID: a.ID, Type: AnnotationCircle, Color: a.Color, StrokeWidth: a.StrokeWidth,
		Center: &center, Radius: a.Radius,
	})
}

// AnnotationList is a JSON-decodable slice of the annotation union.
type AnnotationList []Annotation

// UnmarshalJSON decodes each element through the tagged envelope.
func (l *AnnotationList) UnmarshalJSON(data []byte) error {
	var envelopes []annotationEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return err
	}

	out := make(AnnotationList, 0, len(envelopes))
	for _, env := range envelopes {
		anno, err := env.toAnnotation()
		if err != nil {
			return err
		}
		out = append(out, anno)
	}
	*l = out
	return nil
}

func (env annotationEnvelope) toAnnotation() (Annotation, error) {
	switch env.Type {
	case AnnotationPen:
		return PenAnnotation{
			ID: env.ID, Color: env.Color, StrokeWidth: env.StrokeWidth,
			Points: env.Points,
		}, nil
	case AnnotationRectangle:
		if env.Start == nil || env.End == nil {
			return nil, fmt.Errorf("rectangle annotation %q is missing corner points", env.ID)
		}
		return RectangleAnnotation{
			ID: env.ID, Color: env.Color, StrokeWidth: env.StrokeWidth,
			Start: *env.Start, End: *env.End,
		}, nil
	case AnnotationCircle:
		if env.Center == nil {
			return nil, fmt.Errorf("circle annotation %q is missing its center", env.ID)
		}
		return CircleAnnotation{
			ID: env.ID, Color: env.Color, StrokeWidth: env.StrokeWidth,
			Center: *env.Center, Radius: env.Radius,
		}, nil
	default:
		return nil, fmt.Errorf("unknown annotation type %q", env.Type)
	}
}
