package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/incident-microservice/internal/domain"
	"github.com/incident-microservice/internal/domain/repository"
	"github.com/incident-microservice/internal/pkg/errors"
)

type incidentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewIncidentRepository создает новый экземпляр IncidentRepository
func NewIncidentRepository(db *DB) repository.IncidentRepository {
	return &incidentRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Create сохраняет инцидент; зона поиска пишется как geometry(Polygon, 4326)
func (r *incidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	query := `
		INSERT INTO incidents (
			id, name, type, description, status,
			command_lat, command_lon, search_area,
			target_area_m2, divisions_pending, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7,
			CASE WHEN $8::text IS NULL THEN NULL
			     ELSE ST_SetSRID(ST_GeomFromGeoJSON($8), 4326) END,
			$9, $10, $11, $12
		)
	`

	var geojson *string
	if len(incident.SearchArea) > 0 {
		data, err := json.Marshal(incident.SearchArea.ToGeoJSON())
		if err != nil {
			r.logger.Error("Failed to marshal search area", zap.Error(err))
			return errors.ErrInvalidSearchArea
		}
		s := string(data)
		geojson = &s
	}

	_, err := r.db.ExecContext(ctx, query,
		incident.ID, incident.Name, incident.Type, incident.Description, incident.Status,
		incident.CommandLat, incident.CommandLon, geojson,
		incident.TargetAreaM2, incident.DivisionsPending, incident.CreatedAt, incident.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create incident",
			zap.String("incident_id", incident.ID.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// GetByID возвращает инцидент вместе с зоной поиска
func (r *incidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	query := `
		SELECT
			id, name, type, description, status,
			command_lat, command_lon,
			target_area_m2, divisions_pending, created_at, updated_at,
			ST_AsGeoJSON(search_area) AS search_area_json
		FROM incidents
		WHERE id = $1
	`

	var incident domain.Incident
	var geojson sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&incident.ID, &incident.Name, &incident.Type, &incident.Description, &incident.Status,
		&incident.CommandLat, &incident.CommandLon,
		&incident.TargetAreaM2, &incident.DivisionsPending, &incident.CreatedAt, &incident.UpdatedAt,
		&geojson,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrIncidentNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get incident by ID",
			zap.String("incident_id", id.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if geojson.Valid {
		ring, err := domain.RingFromGeoJSON([]byte(geojson.String))
		if err != nil {
			r.logger.Error("Failed to parse search area GeoJSON",
				zap.String("incident_id", id.String()),
				zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		incident.SearchArea = ring
	}

	return &incident, nil
}

// List возвращает инциденты без геометрии (для списков в UI)
func (r *incidentRepository) List(ctx context.Context, status string, limit int) ([]*domain.Incident, error) {
	query := `
		SELECT
			id, name, type, description, status,
			command_lat, command_lon,
			target_area_m2, divisions_pending, created_at, updated_at
		FROM incidents
	`
	args := []interface{}{}

	if status != "" {
		query += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, status, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list incidents", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var incidents []*domain.Incident
	for rows.Next() {
		var i domain.Incident
		err := rows.Scan(
			&i.ID, &i.Name, &i.Type, &i.Description, &i.Status,
			&i.CommandLat, &i.CommandLon,
			&i.TargetAreaM2, &i.DivisionsPending, &i.CreatedAt, &i.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan incident", zap.Error(err))
			continue
		}
		incidents = append(incidents, &i)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating incident rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return incidents, nil
}

// UpdateStatus меняет статус инцидента
func (r *incidentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE incidents SET status = $2, updated_at = now() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		r.logger.Error("Failed to update incident status",
			zap.String("incident_id", id.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrIncidentNotFound
	}
	return nil
}

// SetDivisionsPending выставляет флаг ожидания фоновой генерации
func (r *incidentRepository) SetDivisionsPending(ctx context.Context, id uuid.UUID, pending bool) error {
	query := `UPDATE incidents SET divisions_pending = $2, updated_at = now() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, pending)
	if err != nil {
		r.logger.Error("Failed to set divisions pending",
			zap.String("incident_id", id.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrIncidentNotFound
	}
	return nil
}

// CountByStatus возвращает количество инцидентов по статусам
func (r *incidentRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM incidents GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count incidents", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			r.logger.Error("Failed to scan incident count", zap.Error(err))
			continue
		}
		counts[status] = count
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating incident counts", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return counts, nil
}
