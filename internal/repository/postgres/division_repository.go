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

type divisionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewDivisionRepository создает новый экземпляр DivisionRepository
func NewDivisionRepository(db *DB) repository.DivisionRepository {
	return &divisionRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// CreateBatch сохраняет набор дивизионов одной транзакцией
func (r *divisionRepository) CreateBatch(ctx context.Context, divisions []*domain.SearchDivision) error {
	if len(divisions) == 0 {
		return nil
	}

	query := `
		INSERT INTO search_divisions (
			id, incident_id, label, boundary,
			area_m2, centroid_lat, centroid_lon,
			priority, status, assigned_unit_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, ST_SetSRID(ST_GeomFromGeoJSON($4), 4326),
			$5, $6, $7,
			$8, $9, $10, $11, $12
		)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	for _, d := range divisions {
		geojson, err := json.Marshal(d.Boundary.ToGeoJSON())
		if err != nil {
			r.logger.Error("Failed to marshal division boundary",
				zap.String("label", d.Label),
				zap.Error(err))
			return errors.ErrDatabaseError
		}

		_, err = tx.ExecContext(ctx, query,
			d.ID, d.IncidentID, d.Label, string(geojson),
			d.AreaM2, d.Centroid.Lat, d.Centroid.Lon,
			d.Priority, d.Status, d.AssignedUnitID, d.CreatedAt, d.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to insert division",
				zap.String("incident_id", d.IncidentID.String()),
				zap.String("label", d.Label),
				zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit divisions", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

const divisionColumns = `
	id, incident_id, label,
	area_m2, centroid_lat, centroid_lon,
	priority, status, assigned_unit_id, created_at, updated_at,
	ST_AsGeoJSON(boundary) AS boundary_json
`

// scanDivision читает строку дивизиона вместе с границей
func (r *divisionRepository) scanDivision(row interface {
	Scan(dest ...interface{}) error
}) (*domain.SearchDivision, error) {
	var d domain.SearchDivision
	var geojson sql.NullString

	err := row.Scan(
		&d.ID, &d.IncidentID, &d.Label,
		&d.AreaM2, &d.Centroid.Lat, &d.Centroid.Lon,
		&d.Priority, &d.Status, &d.AssignedUnitID, &d.CreatedAt, &d.UpdatedAt,
		&geojson,
	)
	if err != nil {
		return nil, err
	}

	if geojson.Valid {
		ring, err := domain.RingFromGeoJSON([]byte(geojson.String))
		if err != nil {
			return nil, err
		}
		d.Boundary = ring
	}
	return &d, nil
}

// GetByID возвращает дивизион с границей
func (r *divisionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SearchDivision, error) {
	query := `SELECT ` + divisionColumns + ` FROM search_divisions WHERE id = $1`

	division, err := r.scanDivision(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrDivisionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get division by ID",
			zap.String("division_id", id.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return division, nil
}

// ListByIncident возвращает дивизионы инцидента в порядке генерации.
// Метки сортируются как биективная base-26 запись: сначала по длине, потом лексикографически
func (r *divisionRepository) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*domain.SearchDivision, error) {
	query := `
		SELECT ` + divisionColumns + `
		FROM search_divisions
		WHERE incident_id = $1
		ORDER BY length(label), label
	`

	rows, err := r.db.QueryContext(ctx, query, incidentID)
	if err != nil {
		r.logger.Error("Failed to list divisions",
			zap.String("incident_id", incidentID.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var divisions []*domain.SearchDivision
	for rows.Next() {
		d, err := r.scanDivision(rows)
		if err != nil {
			r.logger.Error("Failed to scan division", zap.Error(err))
			continue
		}
		divisions = append(divisions, d)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating division rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return divisions, nil
}

// UpdateStatus меняет статус дивизиона
func (r *divisionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE search_divisions SET status = $2, updated_at = now() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		r.logger.Error("Failed to update division status",
			zap.String("division_id", id.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrDivisionNotFound
	}
	return nil
}

// UpdatePriority меняет приоритет дивизиона
func (r *divisionRepository) UpdatePriority(ctx context.Context, id uuid.UUID, priority string) error {
	query := `UPDATE search_divisions SET priority = $2, updated_at = now() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, priority)
	if err != nil {
		r.logger.Error("Failed to update division priority",
			zap.String("division_id", id.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrDivisionNotFound
	}
	return nil
}

// Assign закрепляет команду за дивизионом
func (r *divisionRepository) Assign(ctx context.Context, id uuid.UUID, unitID uuid.UUID) error {
	query := `
		UPDATE search_divisions
		SET assigned_unit_id = $2, status = $3, updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, unitID, domain.DivisionStatusAssigned)
	if err != nil {
		r.logger.Error("Failed to assign division",
			zap.String("division_id", id.String()),
			zap.String("unit_id", unitID.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrDivisionNotFound
	}
	return nil
}

// DeleteUnassigned удаляет неназначенные дивизионы инцидента
func (r *divisionRepository) DeleteUnassigned(ctx context.Context, incidentID uuid.UUID) (int, error) {
	query := `DELETE FROM search_divisions WHERE incident_id = $1 AND assigned_unit_id IS NULL`

	result, err := r.db.ExecContext(ctx, query, incidentID)
	if err != nil {
		r.logger.Error("Failed to delete unassigned divisions",
			zap.String("incident_id", incidentID.String()),
			zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	affected, _ := result.RowsAffected()
	return int(affected), nil
}

// CountByStatus возвращает количество дивизионов по статусам
func (r *divisionRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM search_divisions GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count divisions", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			r.logger.Error("Failed to scan division count", zap.Error(err))
			continue
		}
		counts[status] = count
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating division counts", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return counts, nil
}
