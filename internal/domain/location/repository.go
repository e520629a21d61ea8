package location

import "context"

type WorkLocationRepository interface {
	// Upsert creates the location or overwrites the one with the same (company, name).
	Upsert(ctx context.Context, loc WorkLocation) (WorkLocation, error)
	ListActiveByCompanyID(ctx context.Context, companyID string) ([]WorkLocation, error)
}
