package divider

import "fmt"

// InvalidGeometryError - входной полигон вырожден: меньше трёх вершин
// или нулевая/отрицательная площадь
type InvalidGeometryError struct {
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

// InvalidParameterError - некорректный скалярный параметр генерации
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Reason)
}
