package geo

import (
	"errors"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

var ErrInvalidCoordinates = errors.New("coordinates must be finite numbers")

type Point struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether both coordinates are finite.
func (p Point) Valid() bool {
	return isFinite(p.Latitude) && isFinite(p.Longitude)
}

// Zone is a circular geofence around Center.
type Zone struct {
	Name           string
	Center         Point
	RadiusInMeters float64
}

// HaversineDistance returns the great-circle surface distance between a and b in meters.
func HaversineDistance(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// IsWithinAnyZone reports whether p lies inside (distance <= radius) at least one zone.
// All coordinates are checked before any distance is computed.
func IsWithinAnyZone(p Point, zones []Zone) (bool, error) {
	if !p.Valid() {
		return false, ErrInvalidCoordinates
	}
	for _, z := range zones {
		if !z.Center.Valid() || !isFinite(z.RadiusInMeters) {
			return false, ErrInvalidCoordinates
		}
	}

	for _, z := range zones {
		if HaversineDistance(p, z.Center) <= z.RadiusInMeters {
			return true, nil
		}
	}
	return false, nil
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
