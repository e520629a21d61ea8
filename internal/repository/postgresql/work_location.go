package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type workLocationRepositoryImpl struct {
	db *database.DB
}

func NewWorkLocationRepository(db *database.DB) location.WorkLocationRepository {
	return &workLocationRepositoryImpl{db: db}
}

// Upsert implements location.WorkLocationRepository.
func (r *workLocationRepositoryImpl) Upsert(ctx context.Context, loc location.WorkLocation) (location.WorkLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_locations (company_id, name, latitude, longitude, radius_in_meters, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id, name) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			radius_in_meters = EXCLUDED.radius_in_meters,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		loc.CompanyID, loc.Name, loc.Latitude, loc.Longitude, loc.RadiusInMeters, loc.IsActive,
	).Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		return location.WorkLocation{}, fmt.Errorf("failed to upsert work location: %w", err)
	}
	return loc, nil
}

// ListActiveByCompanyID implements location.WorkLocationRepository.
func (r *workLocationRepositoryImpl) ListActiveByCompanyID(ctx context.Context, companyID string) ([]location.WorkLocation, error) {
	if !validID(companyID) {
		return []location.WorkLocation{}, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, latitude, longitude, radius_in_meters, is_active, created_at, updated_at
		FROM work_locations
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}
	defer rows.Close()

	locations := []location.WorkLocation{}
	for rows.Next() {
		var l location.WorkLocation
		if err := rows.Scan(
			&l.ID, &l.CompanyID, &l.Name, &l.Latitude, &l.Longitude, &l.RadiusInMeters, &l.IsActive,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}
