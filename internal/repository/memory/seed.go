package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Seed is the fixture format of MEMORY_SEED_FILE.
//
//	{
//	  "employees": [{"id": "...", "user_id": "...", "company_id": "...", "name": "...",
//	                 "salary": {"base_salary": "5000000", "allowances": {"meal": "300000"}}}],
//	  "work_locations": [{"company_id": "...", "name": "HQ", "latitude": 12.9, "longitude": 77.6}]
//	}
type Seed struct {
	Employees     []SeedEmployee     `json:"employees"`
	WorkLocations []SeedWorkLocation `json:"work_locations"`
}

type SeedEmployee struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	CompanyID   string      `json:"company_id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Designation string      `json:"designation"`
	Department  string      `json:"department"`
	Shift       string      `json:"shift"`
	Salary      *SeedSalary `json:"salary,omitempty"`
}

type SeedSalary struct {
	BaseSalary decimal.Decimal            `json:"base_salary"`
	Allowances map[string]decimal.Decimal `json:"allowances"`
	Deductions map[string]decimal.Decimal `json:"deductions"`
	// EffectiveFrom is YYYY-MM-DD, defaults to the load day
	EffectiveFrom string `json:"effective_from"`
}

type SeedWorkLocation struct {
	CompanyID      string  `json:"company_id"`
	Name           string  `json:"name"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	RadiusInMeters float64 `json:"radius_in_meters"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

// LoadSeedFile reads a JSON seed from path into the store.
func LoadSeedFile(ctx context.Context, s *Store, path string) (Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return Seed{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return LoadSeed(ctx, s, f)
}

// LoadSeed decodes a JSON seed and writes it through the store's repositories.
// The returned seed carries the ids assigned to employees without one.
func LoadSeed(ctx context.Context, s *Store, r io.Reader) (Seed, error) {
	var seed Seed
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}

	employees := NewEmployeeRepository(s)
	salaries := NewSalaryRepository(s)
	locations := NewWorkLocationRepository(s)

	for i, e := range seed.Employees {
		if e.UserID == "" || e.CompanyID == "" {
			return Seed{}, fmt.Errorf("seed employee %d: user_id and company_id are required", i)
		}
		emp, err := employees.Create(ctx, employee.Employee{
			ID:          e.ID,
			UserID:      e.UserID,
			CompanyID:   e.CompanyID,
			Name:        e.Name,
			Email:       e.Email,
			Designation: e.Designation,
			Department:  e.Department,
			Shift:       e.Shift,
		})
		if err != nil {
			return Seed{}, fmt.Errorf("seed employee %s: %w", e.UserID, err)
		}
		seed.Employees[i].ID = emp.ID

		if e.Salary == nil {
			continue
		}
		effectiveFrom := dayOf(s.now())
		if e.Salary.EffectiveFrom != "" {
			effectiveFrom, err = time.Parse(time.DateOnly, e.Salary.EffectiveFrom)
			if err != nil {
				return Seed{}, fmt.Errorf("seed salary %s: invalid effective_from: %w", e.UserID, err)
			}
		}
		if _, err := salaries.Upsert(ctx, payroll.Salary{
			EmployeeID:    emp.ID,
			BaseSalary:    e.Salary.BaseSalary,
			Allowances:    e.Salary.Allowances,
			Deductions:    e.Salary.Deductions,
			EffectiveFrom: effectiveFrom,
			IsActive:      true,
		}); err != nil {
			return Seed{}, fmt.Errorf("seed salary %s: %w", e.UserID, err)
		}
	}

	for i, l := range seed.WorkLocations {
		if l.CompanyID == "" || l.Name == "" {
			return Seed{}, fmt.Errorf("seed work location %d: company_id and name are required", i)
		}
		radius := l.RadiusInMeters
		if radius <= 0 {
			radius = location.DefaultRadiusInMeters
		}
		active := l.IsActive == nil || *l.IsActive
		if _, err := locations.Upsert(ctx, location.WorkLocation{
			CompanyID:      l.CompanyID,
			Name:           l.Name,
			Latitude:       l.Latitude,
			Longitude:      l.Longitude,
			RadiusInMeters: radius,
			IsActive:       active,
		}); err != nil {
			return Seed{}, fmt.Errorf("seed work location %s: %w", l.Name, err)
		}
	}

	return seed, nil
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
