package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	s *Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

// findByEmployeeAndDate expects the caller to hold the store lock.
func (r *attendanceRepository) findByEmployeeAndDate(employeeID string, date time.Time) (attendance.Attendance, bool) {
	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			return a, true
		}
	}
	return attendance.Attendance{}, false
}

func (r *attendanceRepository) CreateIfAbsent(ctx context.Context, a attendance.Attendance) (attendance.Attendance, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.findByEmployeeAndDate(a.EmployeeID, a.Date); ok {
		return existing, false, nil
	}

	now := r.s.now()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.s.attendances[a.ID] = a
	return a, true, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.findByEmployeeAndDate(employeeID, date)
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *attendanceRepository) CheckOut(ctx context.Context, id string, at time.Time, loc attendance.Location) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if a.CheckOutTime != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	a.CheckOutTime = &at
	a.CheckOutLocation = &loc
	a.UpdatedAt = r.s.now()
	r.s.attendances[id] = a
	return a, nil
}

func (r *attendanceRepository) UpsertCorrection(ctx context.Context, correction attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	if existing, ok := r.findByEmployeeAndDate(correction.EmployeeID, correction.Date); ok {
		if existing.VerificationStatus != attendance.VerificationRejected {
			return attendance.Attendance{}, attendance.ErrCorrectionNotAllowed
		}
		correction.ID = existing.ID
		correction.CreatedAt = existing.CreatedAt
	} else {
		correction.ID = uuid.NewString()
		correction.CreatedAt = now
	}
	correction.CheckInLocation = nil
	correction.CheckOutLocation = nil
	correction.UpdatedAt = now
	r.s.attendances[correction.ID] = correction
	return correction, nil
}

func (r *attendanceRepository) UpdateVerification(ctx context.Context, id string, status attendance.VerificationStatus, verified bool) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	a.VerificationStatus = status
	a.IsVerified = verified
	a.UpdatedAt = r.s.now()
	r.s.attendances[id] = a
	return a, nil
}

func (r *attendanceRepository) Update(ctx context.Context, updated attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.attendances[updated.ID]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if other, taken := r.findByEmployeeAndDate(current.EmployeeID, updated.Date); taken && other.ID != current.ID {
		return attendance.Attendance{}, attendance.ErrDateTaken
	}

	current.Date = updated.Date
	current.CheckInTime = updated.CheckInTime
	current.CheckOutTime = updated.CheckOutTime
	current.Status = updated.Status
	current.IsVerified = updated.IsVerified
	current.VerificationStatus = updated.VerificationStatus
	current.UpdatedAt = r.s.now()
	r.s.attendances[current.ID] = current
	return current, nil
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []attendance.Attendance{}
	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *attendanceRepository) ListByCompany(ctx context.Context, filter attendance.CompanyFilter) ([]attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []attendance.Attendance{}
	for _, a := range r.s.attendances {
		emp, ok := r.s.employees[a.EmployeeID]
		if !ok || emp.CompanyID != filter.CompanyID {
			continue
		}
		if filter.VerificationStatus != nil && a.VerificationStatus != *filter.VerificationStatus {
			continue
		}
		if filter.From != nil && a.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.Date.After(*filter.To) {
			continue
		}
		a.EmployeeName = emp.Name
		a.EmployeeEmail = emp.Email
		a.Designation = emp.Designation
		a.Department = emp.Department
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].EmployeeName < out[j].EmployeeName
	})
	return out, nil
}
