package errors

import "net/http"

var (
	ErrIncidentNotFound = New(
		"INCIDENT_NOT_FOUND",
		"Incident not found",
		http.StatusNotFound,
	)

	ErrDivisionNotFound = New(
		"DIVISION_NOT_FOUND",
		"Division not found",
		http.StatusNotFound,
	)

	ErrUnitNotFound = New(
		"UNIT_NOT_FOUND",
		"Unit not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidSearchArea = New(
		"INVALID_SEARCH_AREA",
		"Search area polygon is degenerate or has fewer than 3 vertices",
		http.StatusBadRequest,
	)

	ErrInvalidTargetArea = New(
		"INVALID_TARGET_AREA",
		"Target division area must be a positive finite number",
		http.StatusBadRequest,
	)

	ErrInvalidStatusTransition = New(
		"INVALID_STATUS_TRANSITION",
		"Requested status transition is not allowed",
		http.StatusConflict,
	)

	ErrAssignmentsExist = New(
		"ASSIGNMENTS_EXIST",
		"Cannot regenerate divisions while unit assignments exist",
		http.StatusConflict,
	)

	ErrDivisionAlreadyAssigned = New(
		"DIVISION_ALREADY_ASSIGNED",
		"Division is already assigned to another unit",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
