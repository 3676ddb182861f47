package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsContains(t *testing.T) {
	b := Bounds{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"inside", V2(50, 40), true},
		{"top-left corner", V2(10, 20), true},
		{"right edge exclusive", V2(110, 40), false},
		{"bottom edge exclusive", V2(50, 70), false},
		{"left of", V2(9, 40), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Contains(tt.p))
		})
	}
}

func TestBoundsIntersect(t *testing.T) {
	a := Bounds{X: 0, Y: 0, Width: 100, Height: 100}
	b := Bounds{X: 50, Y: 60, Width: 100, Height: 100}

	assert.True(t, a.Intersects(b))
	assert.Equal(t, Bounds{X: 50, Y: 60, Width: 50, Height: 40}, a.Intersect(b))

	c := Bounds{X: 200, Y: 200, Width: 10, Height: 10}
	assert.False(t, a.Intersects(c))
	assert.True(t, a.Intersect(c).Empty())
}

func TestBoundsLocalPoint(t *testing.T) {
	b := Bounds{X: 10, Y: 20, Width: 5, Height: 5}
	assert.Equal(t, V2(2, 3), b.LocalPoint(V2(12, 23)))
	assert.Equal(t, Bounds{X: 11, Y: 22, Width: 5, Height: 5}, b.Translate(V2(1, 2)))
}
