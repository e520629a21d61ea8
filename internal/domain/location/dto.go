package location

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type AddWorkLocationRequest struct {
	Name           string   `json:"name"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	RadiusInMeters *float64 `json:"radius_in_meters,omitempty"`
	IsActive       *bool    `json:"is_active,omitempty"`
}

func (r *AddWorkLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	errs = validator.Coordinates(errs, "latitude", r.Latitude, "longitude", r.Longitude)

	if r.RadiusInMeters != nil && *r.RadiusInMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_in_meters",
			Message: "radius_in_meters must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkLocationResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	Name           string  `json:"name"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	RadiusInMeters float64 `json:"radius_in_meters"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func NewWorkLocationResponse(w WorkLocation) WorkLocationResponse {
	return WorkLocationResponse{
		ID:             w.ID,
		CompanyID:      w.CompanyID,
		Name:           w.Name,
		Latitude:       w.Latitude,
		Longitude:      w.Longitude,
		RadiusInMeters: w.RadiusInMeters,
		IsActive:       w.IsActive,
		CreatedAt:      w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      w.UpdatedAt.Format(time.RFC3339),
	}
}
