package domain

import (
	"encoding/json"
	"fmt"
)

// Coordinate - точка в географических координатах WGS84 (EPSG:4326).
// Сериализуется как GeoJSON пара [lon, lat].
type Coordinate struct {
	Lon float64
	Lat float64
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lon, c.Lat})
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate must be a [lon, lat] pair, got %d elements", len(pair))
	}
	c.Lon = pair[0]
	c.Lat = pair[1]
	return nil
}

// Ring - замкнутый контур полигона, упорядоченная последовательность вершин
type Ring []Coordinate

// IsClosed проверяет, совпадает ли последняя вершина с первой
func (r Ring) IsClosed() bool {
	if len(r) < 2 {
		return false
	}
	return r[0] == r[len(r)-1]
}

// Closed возвращает контур с явно замкнутой последней вершиной
func (r Ring) Closed() Ring {
	if len(r) == 0 || r.IsClosed() {
		return r
	}
	closed := make(Ring, len(r)+1)
	copy(closed, r)
	closed[len(r)] = r[0]
	return closed
}

// Vertices возвращает вершины без замыкающего дубликата первой точки
func (r Ring) Vertices() Ring {
	if r.IsClosed() {
		return r[:len(r)-1]
	}
	return r
}

// BoundingBox - прямоугольная ограничивающая рамка в градусах
type BoundingBox struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// Contains проверяет, лежит ли точка внутри рамки с допуском eps
func (b BoundingBox) Contains(c Coordinate, eps float64) bool {
	return c.Lon >= b.MinLon-eps && c.Lon <= b.MaxLon+eps &&
		c.Lat >= b.MinLat-eps && c.Lat <= b.MaxLat+eps
}

// Bounds вычисляет ограничивающую рамку контура
func (r Ring) Bounds() BoundingBox {
	if len(r) == 0 {
		return BoundingBox{}
	}
	b := BoundingBox{
		MinLon: r[0].Lon, MaxLon: r[0].Lon,
		MinLat: r[0].Lat, MaxLat: r[0].Lat,
	}
	for _, c := range r[1:] {
		if c.Lon < b.MinLon {
			b.MinLon = c.Lon
		}
		if c.Lon > b.MaxLon {
			b.MaxLon = c.Lon
		}
		if c.Lat < b.MinLat {
			b.MinLat = c.Lat
		}
		if c.Lat > b.MaxLat {
			b.MaxLat = c.Lat
		}
	}
	return b
}

// GeoJSONPolygon - полигон в формате GeoJSON (один внешний контур)
type GeoJSONPolygon struct {
	Type        string `json:"type"`
	Coordinates []Ring `json:"coordinates"`
}

// ToGeoJSON оборачивает контур в GeoJSON Polygon с замкнутым внешним кольцом
func (r Ring) ToGeoJSON() GeoJSONPolygon {
	return GeoJSONPolygon{
		Type:        "Polygon",
		Coordinates: []Ring{r.Closed()},
	}
}

// RingFromGeoJSON извлекает внешний контур из GeoJSON Polygon
func RingFromGeoJSON(data []byte) (Ring, error) {
	var poly GeoJSONPolygon
	if err := json.Unmarshal(data, &poly); err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON polygon: %w", err)
	}
	if poly.Type != "Polygon" {
		return nil, fmt.Errorf("expected GeoJSON Polygon, got %q", poly.Type)
	}
	if len(poly.Coordinates) == 0 {
		return nil, fmt.Errorf("GeoJSON polygon has no rings")
	}
	return poly.Coordinates[0], nil
}
