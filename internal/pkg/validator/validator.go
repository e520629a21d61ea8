package validator

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+07:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// IsValidLatitude reports whether lat is within [-90, 90].
func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// IsValidLongitude reports whether lng is within [-180, 180].
func IsValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}

// Coordinates appends latitude/longitude errors for required coordinate fields.
func Coordinates(errs ValidationErrors, latField string, lat *float64, lngField string, lng *float64) ValidationErrors {
	if lat == nil {
		errs = append(errs, ValidationError{Field: latField, Message: latField + " is required"})
	} else if !IsValidLatitude(*lat) {
		errs = append(errs, ValidationError{Field: latField, Message: latField + " must be between -90 and 90"})
	}

	if lng == nil {
		errs = append(errs, ValidationError{Field: lngField, Message: lngField + " is required"})
	} else if !IsValidLongitude(*lng) {
		errs = append(errs, ValidationError{Field: lngField, Message: lngField + " must be between -180 and 180"})
	}
	return errs
}
