// Package docs Incident Microservice API.
//
// Микросервис для ведения чрезвычайных инцидентов.
// Делит нарисованную на карте зону поиска на дивизионы примерно равной площади,
// ведёт отметку поисковых команд и их назначения, находит ближайшие больницы.
//
// Основные возможности:
// - Создание инцидентов с автоматической нарезкой зоны поиска на дивизионы
// - Перегенерация дивизионов с новой целевой площадью
// - Отметка поисковых команд и контроль переходов статусов
// - Назначение команд на дивизионы
// - Поиск ближайших больниц с дистанцией
// - Операционная сводка по инцидентам, дивизионам и командам
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
