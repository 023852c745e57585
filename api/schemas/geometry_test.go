package schemas_test

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/scroll-align/api/schemas"
)

func TestRect_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   schemas.Rect
		want schemas.Rect
	}{
		{
			name: "size from edges",
			in:   schemas.Rect{Top: 10, Right: 110, Bottom: 60, Left: 20},
			want: schemas.Rect{Top: 10, Right: 110, Bottom: 60, Left: 20, Width: 90, Height: 50},
		},
		{
			name: "far edges from size",
			in:   schemas.Rect{Top: 10, Left: 20, Width: 90, Height: 50},
			want: schemas.NewRect(20, 10, 90, 50),
		},
		{
			name: "negative origin",
			in:   schemas.Rect{Top: -700, Left: -5, Width: 10, Height: 40},
			want: schemas.Rect{Top: -700, Right: 5, Bottom: -660, Left: -5, Width: 10, Height: 40},
		},
		{
			name: "complete rect is unchanged",
			in:   schemas.NewRect(1, 2, 3, 4),
			want: schemas.NewRect(1, 2, 3, 4),
		},
		{
			name: "empty rect stays empty",
			in:   schemas.Rect{},
			want: schemas.Rect{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestRect_Axes(t *testing.T) {
	r := schemas.NewRect(20, 10, 90, 50)

	assert.Equal(t, 10.0, r.Start(schemas.Block))
	assert.Equal(t, 60.0, r.End(schemas.Block))
	assert.Equal(t, 50.0, r.Size(schemas.Block))
	assert.Equal(t, 20.0, r.Start(schemas.Inline))
	assert.Equal(t, 110.0, r.End(schemas.Inline))
	assert.Equal(t, 90.0, r.Size(schemas.Inline))

	assert.Equal(t, "block", schemas.Block.String())
	assert.Equal(t, "inline", schemas.Inline.String())
}

func TestRect_Contains(t *testing.T) {
	outer := schemas.NewRect(0, 0, 100, 100)

	assert.True(t, outer.Contains(schemas.NewRect(10, 10, 20, 20)))
	assert.True(t, outer.Contains(outer), "touching edges count as inside")
	assert.False(t, outer.Contains(schemas.NewRect(90, 10, 20, 20)))
	assert.False(t, outer.Contains(schemas.NewRect(10, -1, 20, 20)))
}

func TestEdgesSizeViewport(t *testing.T) {
	e := schemas.Edges{Top: 1, Right: 2, Bottom: 3, Left: 4}
	assert.Equal(t, 1.0, e.Start(schemas.Block))
	assert.Equal(t, 3.0, e.End(schemas.Block))
	assert.Equal(t, 4.0, e.Start(schemas.Inline))
	assert.Equal(t, 2.0, e.End(schemas.Inline))

	s := schemas.Size{Width: 300, Height: 150}
	assert.Equal(t, 150.0, s.Along(schemas.Block))
	assert.Equal(t, 300.0, s.Along(schemas.Inline))

	v := schemas.Viewport{Width: 1280, Height: 800, ScrollX: 5, ScrollY: 900}
	assert.Equal(t, schemas.NewRect(0, 0, 1280, 800), v.Rect())
	assert.Equal(t, 800.0, v.Extent(schemas.Block))
	assert.Equal(t, 1280.0, v.Extent(schemas.Inline))
	assert.Equal(t, 900.0, v.Offset(schemas.Block))
	assert.Equal(t, 5.0, v.Offset(schemas.Inline))
}

func TestScrollDelta_JSONTags(t *testing.T) {
	data, err := jsoniter.Marshal(schemas.ScrollDelta{Scrolled: true, Container: "html", Top: 1650})
	require.NoError(t, err)
	assert.JSONEq(t, `{"scrolled": true, "container": "html", "top": 1650, "left": 0}`, string(data))

	data, err = jsoniter.Marshal(schemas.ScrollDelta{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"scrolled": false, "top": 0, "left": 0}`, string(data), "container is omitted when empty")
}
