package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotationListDecodesTaggedUnion(t *testing.T) {
	payload := `[
		{"id":"a1","type":"pen","color":"#ef4444","strokeWidth":2,"points":[{"x":1,"y":2},{"x":3,"y":4}]},
		{"id":"a2","type":"rectangle","color":"#00f","strokeWidth":3,"start":{"x":0,"y":0},"end":{"x":10,"y":10}},
		{"id":"a3","type":"circle","color":"#0f0","strokeWidth":1,"center":{"x":5,"y":5},"radius":2.5}
	]`

	var list AnnotationList
	require.NoError(t, json.Unmarshal([]byte(payload), &list))
	require.Len(t, list, 3)

	pen, ok := list[0].(PenAnnotation)
	require.True(t, ok)
	assert.Equal(t, []Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, pen.Points)

	rect, ok := list[1].(RectangleAnnotation)
	require.True(t, ok)
	assert.Equal(t, Point{X: 10, Y: 10}, rect.End)

	circle, ok := list[2].(CircleAnnotation)
	require.True(t, ok)
	assert.Equal(t, 2.5, circle.Radius)
}

func TestAnnotationListRejectsUnknownKind(t *testing.T) {
	var list AnnotationList
	err := json.Unmarshal([]byte(`[{"id":"a1","type":"polygon"}]`), &list)
	assert.Error(t, err)
}

func TestAnnotationRoundTripKeepsKindTags(t *testing.T) {
	original := AnnotationList{
		CircleAnnotation{ID: "a1", Color: "#fff", StrokeWidth: 2, Center: Point{X: 1, Y: 1}, Radius: 3},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"circle"`)

	var decoded AnnotationList
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestRoleHasPermission(t *testing.T) {
	role := Role{
		Name:        RoleResearcher,
		Permissions: []Permission{PermViewCases, PermViewReports},
	}
	assert.True(t, role.HasPermission(PermViewReports))
	assert.False(t, role.HasPermission(PermManageCases))
}

func TestUserPasswordHashing(t *testing.T) {
	var u User
	// Seeded demo users carry no hash and accept any password.
	assert.True(t, u.CheckPassword("anything"))

	require.NoError(t, u.SetPassword("hunter2!"))
	assert.True(t, u.CheckPassword("hunter2!"))
	assert.False(t, u.CheckPassword("wrong"))
}
