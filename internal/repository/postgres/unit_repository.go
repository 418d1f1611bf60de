package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/incident-microservice/internal/domain"
	"github.com/incident-microservice/internal/domain/repository"
	"github.com/incident-microservice/internal/pkg/errors"
)

type unitRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewUnitRepository создает новый экземпляр UnitRepository
func NewUnitRepository(db *DB) repository.UnitRepository {
	return &unitRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const unitColumns = `
	id, incident_id, call_sign, type, team_size, status,
	capabilities, assigned_division_id, last_check_in_at, created_at, updated_at
`

// Upsert создаёт или обновляет команду по (incident_id, call_sign)
func (r *unitRepository) Upsert(ctx context.Context, unit *domain.Unit) error {
	query := `
		INSERT INTO units (` + unitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (incident_id, call_sign) DO UPDATE SET
			type = EXCLUDED.type,
			team_size = EXCLUDED.team_size,
			capabilities = EXCLUDED.capabilities,
			last_check_in_at = EXCLUDED.last_check_in_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		unit.ID, unit.IncidentID, unit.CallSign, unit.Type, unit.TeamSize, unit.Status,
		pq.Array(unit.Capabilities), unit.AssignedDivisionID,
		unit.LastCheckInAt, unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert unit",
			zap.String("incident_id", unit.IncidentID.String()),
			zap.String("call_sign", unit.CallSign),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// scanUnit читает строку команды; capabilities хранится как text[]
func scanUnit(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Unit, error) {
	var u domain.Unit
	var capabilities pq.StringArray

	err := row.Scan(
		&u.ID, &u.IncidentID, &u.CallSign, &u.Type, &u.TeamSize, &u.Status,
		&capabilities, &u.AssignedDivisionID, &u.LastCheckInAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Capabilities = []string(capabilities)
	return &u, nil
}

// GetByID возвращает команду по ID
func (r *unitRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1`

	unit, err := scanUnit(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrUnitNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get unit by ID",
			zap.String("unit_id", id.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return unit, nil
}

// GetByCallSign возвращает команду инцидента по позывному
func (r *unitRepository) GetByCallSign(ctx context.Context, incidentID uuid.UUID, callSign string) (*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE incident_id = $1 AND call_sign = $2`

	unit, err := scanUnit(r.db.QueryRowContext(ctx, query, incidentID, callSign))
	if err == sql.ErrNoRows {
		return nil, errors.ErrUnitNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get unit by call sign",
			zap.String("incident_id", incidentID.String()),
			zap.String("call_sign", callSign),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return unit, nil
}

// ListByIncident возвращает команды инцидента в порядке регистрации
func (r *unitRepository) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*domain.Unit, error) {
	query := `
		SELECT ` + unitColumns + `
		FROM units
		WHERE incident_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, incidentID)
	if err != nil {
		r.logger.Error("Failed to list units",
			zap.String("incident_id", incidentID.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var units []*domain.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			r.logger.Error("Failed to scan unit", zap.Error(err))
			continue
		}
		units = append(units, u)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating unit rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return units, nil
}

// UpdateStatus меняет статус команды и фиксирует время отметки
func (r *unitRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE units
		SET status = $2, last_check_in_at = now(), updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		r.logger.Error("Failed to update unit status",
			zap.String("unit_id", id.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrUnitNotFound
	}
	return nil
}

// AssignDivision закрепляет дивизион за командой (nil снимает закрепление)
func (r *unitRepository) AssignDivision(ctx context.Context, id uuid.UUID, divisionID *uuid.UUID) error {
	query := `UPDATE units SET assigned_division_id = $2, updated_at = now() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, divisionID)
	if err != nil {
		r.logger.Error("Failed to assign division to unit",
			zap.String("unit_id", id.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.ErrUnitNotFound
	}
	return nil
}

// CountByStatus возвращает количество команд по статусам
func (r *unitRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM units GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count units", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			r.logger.Error("Failed to scan unit count", zap.Error(err))
			continue
		}
		counts[status] = count
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating unit counts", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return counts, nil
}
