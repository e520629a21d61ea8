package location

import "context"

type WorkLocationService interface {
	// AddWorkLocation upserts a location for the caller's company
	AddWorkLocation(ctx context.Context, req AddWorkLocationRequest) (WorkLocationResponse, error)

	// ListWorkLocations returns the active locations of the caller's company
	ListWorkLocations(ctx context.Context) ([]WorkLocationResponse, error)
}
