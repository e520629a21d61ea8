package location

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/geo"
)

const DefaultRadiusInMeters = 100.0

// WorkLocation is a named circular zone owned by a company.
type WorkLocation struct {
	ID             string
	CompanyID      string
	Name           string
	Latitude       float64
	Longitude      float64
	RadiusInMeters float64
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (w WorkLocation) Zone() geo.Zone {
	return geo.Zone{
		Name:           w.Name,
		Center:         geo.Point{Latitude: w.Latitude, Longitude: w.Longitude},
		RadiusInMeters: w.RadiusInMeters,
	}
}

// Zones converts locations to geofence zones.
func Zones(locations []WorkLocation) []geo.Zone {
	zones := make([]geo.Zone, 0, len(locations))
	for _, l := range locations {
		zones = append(zones, l.Zone())
	}
	return zones
}
