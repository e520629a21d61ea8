package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/google/uuid"
)

type workLocationRepository struct {
	s *Store
}

func NewWorkLocationRepository(s *Store) location.WorkLocationRepository {
	return &workLocationRepository{s: s}
}

func (r *workLocationRepository) Upsert(ctx context.Context, loc location.WorkLocation) (location.WorkLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	for id, existing := range r.s.locations {
		if existing.CompanyID == loc.CompanyID && existing.Name == loc.Name {
			loc.ID = id
			loc.CreatedAt = existing.CreatedAt
			loc.UpdatedAt = now
			r.s.locations[id] = loc
			return loc, nil
		}
	}

	loc.ID = uuid.NewString()
	loc.CreatedAt = now
	loc.UpdatedAt = now
	r.s.locations[loc.ID] = loc
	return loc, nil
}

func (r *workLocationRepository) ListActiveByCompanyID(ctx context.Context, companyID string) ([]location.WorkLocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []location.WorkLocation{}
	for _, l := range r.s.locations {
		if l.CompanyID == companyID && l.IsActive {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
