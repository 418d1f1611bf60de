package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/incident-microservice/internal/domain"
	"github.com/incident-microservice/internal/domain/repository"
	"github.com/incident-microservice/internal/pkg/errors"
)

type hospitalRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewHospitalRepository создает новый экземпляр HospitalRepository
func NewHospitalRepository(db *DB) repository.HospitalRepository {
	return &hospitalRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// GetNearest возвращает limit ближайших больниц к точке.
// Сортировка по оператору <-> использует GiST-индекс, дистанция
// считается по geography (метры на сфероиде)
func (r *hospitalRepository) GetNearest(ctx context.Context, lat, lon float64, limit int) ([]*domain.Hospital, error) {
	query := `
		SELECT
			id, name, address, phone, lat, lon, trauma_level, helipad,
			ST_Distance(
				location::geography,
				ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
			) / 1000.0 AS distance_km
		FROM hospitals
		ORDER BY location <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, lat, lon, limit)
	if err != nil {
		r.logger.Error("Failed to query nearest hospitals",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var hospitals []*domain.Hospital
	for rows.Next() {
		var h domain.Hospital
		err := rows.Scan(
			&h.ID, &h.Name, &h.Address, &h.Phone, &h.Lat, &h.Lon,
			&h.TraumaLevel, &h.Helipad, &h.DistanceKm,
		)
		if err != nil {
			r.logger.Error("Failed to scan hospital", zap.Error(err))
			continue
		}
		hospitals = append(hospitals, &h)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating hospital rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return hospitals, nil
}
