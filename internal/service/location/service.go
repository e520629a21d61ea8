package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
)

type WorkLocationServiceImpl struct {
	location.WorkLocationRepository
	employee.EmployeeRepository
}

func NewWorkLocationService(
	workLocationRepo location.WorkLocationRepository,
	employeeRepo employee.EmployeeRepository,
) location.WorkLocationService {
	return &WorkLocationServiceImpl{
		WorkLocationRepository: workLocationRepo,
		EmployeeRepository:     employeeRepo,
	}
}

func (s *WorkLocationServiceImpl) companyID(ctx context.Context) (string, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return "", err
	}
	return employee.CompanyIDForPrincipal(ctx, s.EmployeeRepository, principal)
}

// AddWorkLocation implements location.WorkLocationService.
func (s *WorkLocationServiceImpl) AddWorkLocation(ctx context.Context, req location.AddWorkLocationRequest) (location.WorkLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.WorkLocationResponse{}, err
	}

	companyID, err := s.companyID(ctx)
	if err != nil {
		return location.WorkLocationResponse{}, err
	}

	radius := location.DefaultRadiusInMeters
	if req.RadiusInMeters != nil {
		radius = *req.RadiusInMeters
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	saved, err := s.WorkLocationRepository.Upsert(ctx, location.WorkLocation{
		CompanyID:      companyID,
		Name:           strings.TrimSpace(req.Name),
		Latitude:       *req.Latitude,
		Longitude:      *req.Longitude,
		RadiusInMeters: radius,
		IsActive:       isActive,
	})
	if err != nil {
		return location.WorkLocationResponse{}, fmt.Errorf("failed to save work location: %w", err)
	}

	slog.Info("work location saved", "company_id", companyID, "name", saved.Name, "radius_m", saved.RadiusInMeters)
	return location.NewWorkLocationResponse(saved), nil
}

// ListWorkLocations implements location.WorkLocationService.
func (s *WorkLocationServiceImpl) ListWorkLocations(ctx context.Context) ([]location.WorkLocationResponse, error) {
	companyID, err := s.companyID(ctx)
	if err != nil {
		return nil, err
	}

	locations, err := s.WorkLocationRepository.ListActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}

	out := make([]location.WorkLocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, location.NewWorkLocationResponse(l))
	}
	return out, nil
}
