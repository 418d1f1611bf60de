// Package divider разбивает зону поиска инцидента на поисковые дивизионы
// примерно равной площади для назначения командам.
//
// Алгоритм: локальная плоская проекция (метры на градус по широте центроида),
// квадратная сетка со стороной sqrt(целевой площади), отсечение каждой ячейки
// по границе полигона, отбрасывание осколков, обратная проекция и детерминированная
// маркировка в порядке обхода север->юг, запад->восток.
//
// Плоская аппроксимация достаточна для зон масштаба километров; для очень
// больших или высокоширотных зон погрешность растёт (осознанное упрощение).
package divider

import (
	"math"

	"github.com/incident-microservice/internal/domain"
)

const (
	// metersPerDegreeLat - метров в одном градусе широты
	metersPerDegreeLat = 111320.0

	// minCellAreaRatio - доля целевой площади, ниже которой отсечённая
	// ячейка считается осколком на границе и отбрасывается
	minCellAreaRatio = 0.02
)

// Division - сгенерированный поисковый дивизион
type Division struct {
	Label    string
	Boundary domain.Ring
	AreaM2   float64
	Centroid domain.Coordinate
	Priority string
	Status   string
}

// point - вершина в локальной метрической системе координат
type point struct {
	x float64
	y float64
}

// Generate разбивает полигон зоны поиска (WGS84, [lon, lat]) на дивизионы
// площадью около targetAreaM2 м². Чистая функция: при одинаковых входах
// возвращает одинаковые дивизионы в одинаковом порядке с одинаковыми метками.
func Generate(ring domain.Ring, targetAreaM2 float64) ([]Division, error) {
	if math.IsNaN(targetAreaM2) || math.IsInf(targetAreaM2, 0) {
		return nil, &InvalidParameterError{Param: "target_area_m2", Reason: "must be finite"}
	}
	if targetAreaM2 <= 0 {
		return nil, &InvalidParameterError{Param: "target_area_m2", Reason: "must be positive"}
	}

	poly, scale, err := project(ring)
	if err != nil {
		return nil, err
	}

	totalArea := math.Abs(shoelace(poly))
	if totalArea <= 0 {
		return nil, &InvalidGeometryError{Reason: "polygon area is zero or negative"}
	}

	// Сторона квадратной ячейки и размер сетки по ограничивающей рамке
	side := math.Sqrt(targetAreaM2)
	minX, minY, maxX, maxY := bounds(poly)
	cols := int(math.Ceil((maxX - minX) / side))
	rows := int(math.Ceil((maxY - minY) / side))

	minArea := targetAreaM2 * minCellAreaRatio

	var divisions []Division
	// Обход север->юг, запад->восток: порядок фиксирован для воспроизводимости меток
	for row := 0; row < rows; row++ {
		cellTop := maxY - float64(row)*side
		cellBottom := cellTop - side
		for col := 0; col < cols; col++ {
			cellLeft := minX + float64(col)*side
			cellRight := cellLeft + side

			cell := clipToRect(poly, cellLeft, cellBottom, cellRight, cellTop)
			if len(cell) < 3 {
				continue
			}

			area := math.Abs(shoelace(cell))
			if area < minArea {
				// Осколок от отсечения на границе
				continue
			}

			divisions = append(divisions, Division{
				Label:    divisionLabel(len(divisions)),
				Boundary: unproject(cell, scale).Closed(),
				AreaM2:   area,
				Centroid: scale.toGeo(polyCentroid(cell)),
				Priority: domain.DivisionPriorityLow,
				Status:   domain.DivisionStatusUnassigned,
			})
		}
	}

	return divisions, nil
}

// GridSize оценивает размер сетки (колонки, строки) без генерации дивизионов.
// Используется для решения, уводить ли генерацию в фоновый воркер.
func GridSize(ring domain.Ring, targetAreaM2 float64) (cols, rows int, err error) {
	if math.IsNaN(targetAreaM2) || math.IsInf(targetAreaM2, 0) || targetAreaM2 <= 0 {
		return 0, 0, &InvalidParameterError{Param: "target_area_m2", Reason: "must be a positive finite number"}
	}

	poly, _, err := project(ring)
	if err != nil {
		return 0, 0, err
	}
	if math.Abs(shoelace(poly)) <= 0 {
		return 0, 0, &InvalidGeometryError{Reason: "polygon area is zero or negative"}
	}

	side := math.Sqrt(targetAreaM2)
	minX, minY, maxX, maxY := bounds(poly)
	cols = int(math.Ceil((maxX - minX) / side))
	rows = int(math.Ceil((maxY - minY) / side))
	return cols, rows, nil
}

// Measure возвращает площадь (м²) и центроид полигона в локальной плоской
// проекции. Используется для вручную нарисованных дивизионов.
func Measure(ring domain.Ring) (float64, domain.Coordinate, error) {
	poly, scale, err := project(ring)
	if err != nil {
		return 0, domain.Coordinate{}, err
	}

	area := math.Abs(shoelace(poly))
	if area <= 0 {
		return 0, domain.Coordinate{}, &InvalidGeometryError{Reason: "polygon area is zero or negative"}
	}
	return area, scale.toGeo(polyCentroid(poly)), nil
}

// localScale - параметры локальной плоской проекции
type localScale struct {
	originLon    float64
	originLat    float64
	metersPerLon float64
	metersPerLat float64
}

func (s localScale) toGeo(p point) domain.Coordinate {
	return domain.Coordinate{
		Lon: s.originLon + p.x/s.metersPerLon,
		Lat: s.originLat + p.y/s.metersPerLat,
	}
}

// project валидирует контур и переводит его вершины в локальную метрическую
// систему с началом в юго-западном углу ограничивающей рамки
func project(ring domain.Ring) ([]point, localScale, error) {
	vertices := ring.Vertices()
	if len(vertices) < 3 {
		return nil, localScale{}, &InvalidGeometryError{Reason: "polygon must have at least 3 vertices"}
	}

	distinct := 0
	seen := make(map[domain.Coordinate]struct{}, len(vertices))
	for _, v := range vertices {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			distinct++
		}
	}
	if distinct < 3 {
		return nil, localScale{}, &InvalidGeometryError{Reason: "polygon must have at least 3 distinct vertices"}
	}

	var latSum float64
	for _, v := range vertices {
		latSum += v.Lat
	}
	centroidLat := latSum / float64(len(vertices))

	b := vertices.Bounds()
	scale := localScale{
		originLon:    b.MinLon,
		originLat:    b.MinLat,
		metersPerLon: metersPerDegreeLat * math.Cos(centroidLat*math.Pi/180.0),
		metersPerLat: metersPerDegreeLat,
	}

	poly := make([]point, len(vertices))
	for i, v := range vertices {
		poly[i] = point{
			x: (v.Lon - scale.originLon) * scale.metersPerLon,
			y: (v.Lat - scale.originLat) * scale.metersPerLat,
		}
	}
	return poly, scale, nil
}

func unproject(poly []point, scale localScale) domain.Ring {
	ring := make(domain.Ring, len(poly))
	for i, p := range poly {
		ring[i] = scale.toGeo(p)
	}
	return ring
}

// shoelace - знаковая площадь полигона по формуле Гаусса
func shoelace(poly []point) float64 {
	var sum float64
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += poly[i].x*poly[j].y - poly[j].x*poly[i].y
	}
	return sum / 2
}

// polyCentroid - центроид полигона
func polyCentroid(poly []point) point {
	signed := shoelace(poly)
	if signed == 0 {
		// Вырожденный случай - среднее вершин
		var c point
		for _, p := range poly {
			c.x += p.x
			c.y += p.y
		}
		c.x /= float64(len(poly))
		c.y /= float64(len(poly))
		return c
	}

	var cx, cy float64
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := poly[i].x*poly[j].y - poly[j].x*poly[i].y
		cx += (poly[i].x + poly[j].x) * cross
		cy += (poly[i].y + poly[j].y) * cross
	}
	return point{x: cx / (6 * signed), y: cy / (6 * signed)}
}

func bounds(poly []point) (minX, minY, maxX, maxY float64) {
	minX, maxX = poly[0].x, poly[0].x
	minY, maxY = poly[0].y, poly[0].y
	for _, p := range poly[1:] {
		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}
	}
	return minX, minY, maxX, maxY
}

// clipToRect отсекает полигон прямоугольной ячейкой сетки
// (Sutherland-Hodgman, четыре полуплоскости)
func clipToRect(poly []point, minX, minY, maxX, maxY float64) []point {
	out := clipHalfPlane(poly, func(p point) bool { return p.x >= minX }, func(a, b point) point {
		t := (minX - a.x) / (b.x - a.x)
		return point{x: minX, y: a.y + t*(b.y-a.y)}
	})
	out = clipHalfPlane(out, func(p point) bool { return p.x <= maxX }, func(a, b point) point {
		t := (maxX - a.x) / (b.x - a.x)
		return point{x: maxX, y: a.y + t*(b.y-a.y)}
	})
	out = clipHalfPlane(out, func(p point) bool { return p.y >= minY }, func(a, b point) point {
		t := (minY - a.y) / (b.y - a.y)
		return point{x: a.x + t*(b.x-a.x), y: minY}
	})
	out = clipHalfPlane(out, func(p point) bool { return p.y <= maxY }, func(a, b point) point {
		t := (maxY - a.y) / (b.y - a.y)
		return point{x: a.x + t*(b.x-a.x), y: maxY}
	})
	return out
}

// clipHalfPlane - один проход Sutherland-Hodgman по границе полуплоскости
func clipHalfPlane(poly []point, inside func(point) bool, intersect func(a, b point) point) []point {
	if len(poly) == 0 {
		return nil
	}

	out := make([]point, 0, len(poly)+4)
	prev := poly[len(poly)-1]
	prevInside := inside(prev)

	for _, cur := range poly {
		curInside := inside(cur)
		switch {
		case curInside && prevInside:
			out = append(out, cur)
		case curInside && !prevInside:
			out = append(out, intersect(prev, cur), cur)
		case !curInside && prevInside:
			out = append(out, intersect(prev, cur))
		}
		prev = cur
		prevInside = curInside
	}
	return out
}

// divisionLabel - метка дивизиона по порядковому номеру: DIV-A..DIV-Z, DIV-AA..
func divisionLabel(n int) string {
	letters := ""
	n++
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	return "DIV-" + letters
}
