package places

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestBoundingBoxHalfWidth(t *testing.T) {
	for _, r := range []float64{1, 500, 15000, 111000} {
		b := BoundingBox(5.5, 7.0, r)
		want := r / 111000

		assert.InDelta(t, want, (b.Max.Lat()-b.Min.Lat())/2, 1e-12, "radius %v", r)
		assert.InDelta(t, want, (b.Max.Lon()-b.Min.Lon())/2, 1e-12, "radius %v", r)
		assert.InDelta(t, 5.5, b.Center().Lat(), 1e-12)
		assert.InDelta(t, 7.0, b.Center().Lon(), 1e-12)
	}
}

func TestBoundingBoxIgnoresLatitude(t *testing.T) {
	equator := BoundingBox(0, 10, 15000)
	north := BoundingBox(70, 10, 15000)

	assert.InDelta(t, equator.Max.Lon()-equator.Min.Lon(), north.Max.Lon()-north.Min.Lon(), 1e-12)
	assert.True(t, north.Contains(orb.Point{10, 70}))
}

func TestBuildQuery(t *testing.T) {
	q := BuildQuery(5.5, 7, 111000)

	assert.True(t, strings.HasPrefix(q, "[out:json];"))
	assert.True(t, strings.HasSuffix(q, "out center;\n"))
	for _, key := range categoryKeys {
		for _, kind := range []string{"node", "way", "relation"} {
			assert.Contains(t, q, kind+`["`+key+`"](4.5,6,6.5,8);`)
		}
	}
	for _, v := range aroundAmenities {
		assert.Contains(t, q, `node["amenity"="`+v+`"](around:111000,5.5,7);`)
	}
	assert.Contains(t, q, `node["shop"](around:111000,5.5,7);`)
}

func TestCapForDisplay(t *testing.T) {
	mk := func(n int) []Element {
		out := make([]Element, n)
		for i := range out {
			out[i] = Element{ID: int64(i), Tags: map[string]string{"name": "x"}}
		}
		return out
	}

	assert.Len(t, CapForDisplay(mk(0), nil), 0)
	assert.Len(t, CapForDisplay(mk(15), nil), 15)
	assert.Len(t, CapForDisplay(mk(16), nil), 8)
	assert.Len(t, CapForDisplay(mk(200), nil), 8)
}
