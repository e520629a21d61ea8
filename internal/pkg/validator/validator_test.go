package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123456Z"}
	invalid := []string{"2024-01-15", "10:30:00", "2024-01-15 10:30:00", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"APPROVE", "REJECT"}
	if !IsInSlice("APPROVE", slice) {
		t.Error("IsInSlice(APPROVE) = false, want true")
	}
	if IsInSlice("approve", slice) {
		t.Error("IsInSlice(approve) = true, want false")
	}
	if IsInSlice("x", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}

func TestCoordinates(t *testing.T) {
	lat, lng := 12.9, 77.6
	if errs := Coordinates(nil, "latitude", &lat, "longitude", &lng); len(errs) != 0 {
		t.Errorf("Coordinates(valid) = %v, want none", errs)
	}

	errs := Coordinates(nil, "latitude", nil, "longitude", nil)
	if len(errs) != 2 {
		t.Fatalf("Coordinates(nil, nil) returned %d errors, want 2", len(errs))
	}

	badLat, badLng := 91.0, -181.0
	m := Coordinates(nil, "latitude", &badLat, "longitude", &badLng).ToMap()
	if m["latitude"] != "latitude must be between -90 and 90" {
		t.Errorf("latitude message = %q", m["latitude"])
	}
	if m["longitude"] != "longitude must be between -180 and 180" {
		t.Errorf("longitude message = %q", m["longitude"])
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Message: "bad"},
		{Field: "b", Message: "worse"},
	}
	if got := errs.Error(); got != "a: bad; b: worse" {
		t.Errorf("Error() = %q", got)
	}
}
