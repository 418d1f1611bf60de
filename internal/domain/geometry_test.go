package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_Closed(t *testing.T) {
	open := Ring{
		{Lon: -85.442, Lat: 38.396},
		{Lon: -85.441, Lat: 38.396},
		{Lon: -85.441, Lat: 38.397},
	}

	closed := open.Closed()

	assert.False(t, open.IsClosed())
	assert.True(t, closed.IsClosed())
	assert.Len(t, closed, 4)
	assert.Equal(t, closed[0], closed[3])

	// Уже замкнутый контур не дублируется
	assert.Equal(t, closed, closed.Closed())
}

func TestRing_Vertices(t *testing.T) {
	closed := Ring{
		{Lon: 0, Lat: 0},
		{Lon: 1, Lat: 0},
		{Lon: 1, Lat: 1},
		{Lon: 0, Lat: 0},
	}

	vertices := closed.Vertices()

	assert.Len(t, vertices, 3)
	assert.False(t, vertices.IsClosed())
}

func TestRing_Bounds(t *testing.T) {
	ring := Ring{
		{Lon: -85.442, Lat: 38.396},
		{Lon: -85.440, Lat: 38.395},
		{Lon: -85.441, Lat: 38.398},
	}

	b := ring.Bounds()

	assert.Equal(t, -85.442, b.MinLon)
	assert.Equal(t, -85.440, b.MaxLon)
	assert.Equal(t, 38.395, b.MinLat)
	assert.Equal(t, 38.398, b.MaxLat)
	assert.True(t, b.Contains(Coordinate{Lon: -85.441, Lat: 38.396}, 0))
	assert.False(t, b.Contains(Coordinate{Lon: -85.430, Lat: 38.396}, 0))
}

func TestCoordinate_JSON(t *testing.T) {
	c := Coordinate{Lon: -85.442, Lat: 38.396}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `[-85.442, 38.396]`, string(data))

	var parsed Coordinate
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, c, parsed)

	// Tuple из трёх элементов не принимается
	assert.Error(t, json.Unmarshal([]byte(`[1, 2, 3]`), &parsed))
}

func TestRingFromGeoJSON(t *testing.T) {
	ring := Ring{
		{Lon: -85.442, Lat: 38.396},
		{Lon: -85.441, Lat: 38.396},
		{Lon: -85.441, Lat: 38.397},
	}

	data, err := json.Marshal(ring.ToGeoJSON())
	require.NoError(t, err)

	parsed, err := RingFromGeoJSON(data)
	require.NoError(t, err)
	assert.True(t, parsed.IsClosed())
	assert.Equal(t, ring.Closed(), parsed)

	_, err = RingFromGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`))
	assert.Error(t, err)

	_, err = RingFromGeoJSON([]byte(`{"type":"Polygon","coordinates":[]}`))
	assert.Error(t, err)
}
