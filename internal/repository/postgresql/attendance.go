package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in_time, a.check_out_time,
	a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
	a.status, a.is_verified, a.verification_status, a.method, a.reason,
	a.created_at, a.updated_at
`

// returningColumns mirrors attendanceColumns for statements without the "a" alias
const returningColumns = `
	id, employee_id, date, check_in_time, check_out_time,
	check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude,
	status, is_verified, verification_status, method, reason,
	created_at, updated_at
`

func scanAttendance(row pgx.Row, joined bool) (attendance.Attendance, error) {
	var (
		att                                attendance.Attendance
		inLat, inLng, outLat, outLng       *float64
		status, verificationStatus, method string
		employeeName, employeeEmail        string
		designation, department            string
	)

	dest := []any{
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckInTime, &att.CheckOutTime,
		&inLat, &inLng, &outLat, &outLng,
		&status, &att.IsVerified, &verificationStatus, &method, &att.Reason,
		&att.CreatedAt, &att.UpdatedAt,
	}
	if joined {
		dest = append(dest, &employeeName, &employeeEmail, &designation, &department)
	}

	if err := row.Scan(dest...); err != nil {
		return attendance.Attendance{}, err
	}

	att.Status = attendance.Status(status)
	att.VerificationStatus = attendance.VerificationStatus(verificationStatus)
	att.Method = attendance.Method(method)
	att.CheckInLocation = toLocation(inLat, inLng)
	att.CheckOutLocation = toLocation(outLat, outLng)
	att.EmployeeName = employeeName
	att.EmployeeEmail = employeeEmail
	att.Designation = designation
	att.Department = department
	return att, nil
}

func toLocation(lat, lng *float64) *attendance.Location {
	if lat == nil || lng == nil {
		return nil
	}
	return &attendance.Location{Latitude: *lat, Longitude: *lng}
}

func locationArgs(l *attendance.Location) (*float64, *float64) {
	if l == nil {
		return nil, nil
	}
	return &l.Latitude, &l.Longitude
}

// CreateIfAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	inLat, inLng := locationArgs(newAttendance.CheckInLocation)
	query := `
		INSERT INTO attendances (
			employee_id, date, check_in_time, check_in_latitude, check_in_longitude,
			status, is_verified, verification_status, method, reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING ` + returningColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.CheckInTime,
		inLat, inLng,
		string(newAttendance.Status),
		newAttendance.IsVerified,
		string(newAttendance.VerificationStatus),
		string(newAttendance.Method),
		newAttendance.Reason,
	), false)
	if err == nil {
		return saved, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}

	existing, err := a.GetByEmployeeAndDate(ctx, newAttendance.EmployeeID, newAttendance.Date)
	if err != nil {
		return attendance.Attendance{}, false, err
	}
	return existing, false, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if !validID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	if !validID(employeeID) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.employee_id = $1 AND a.date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return att, nil
}

// CheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) CheckOut(ctx context.Context, id string, at time.Time, loc attendance.Location) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out_time = $2, check_out_latitude = $3, check_out_longitude = $4, updated_at = NOW()
		WHERE id = $1 AND check_out_time IS NULL
		RETURNING ` + returningColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, id, at, loc.Latitude, loc.Longitude), false)
	if err == nil {
		return att, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, fmt.Errorf("failed to check out: %w", err)
	}

	if _, err := a.GetByID(ctx, id); err != nil {
		return attendance.Attendance{}, err
	}
	return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
}

// UpsertCorrection implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertCorrection(ctx context.Context, correction attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in_time, check_out_time,
			status, is_verified, verification_status, method, reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in_time = EXCLUDED.check_in_time,
			check_out_time = EXCLUDED.check_out_time,
			check_in_latitude = NULL,
			check_in_longitude = NULL,
			check_out_latitude = NULL,
			check_out_longitude = NULL,
			status = EXCLUDED.status,
			is_verified = EXCLUDED.is_verified,
			verification_status = EXCLUDED.verification_status,
			method = EXCLUDED.method,
			reason = EXCLUDED.reason,
			updated_at = NOW()
		WHERE attendances.verification_status = 'REJECTED'
		RETURNING ` + returningColumns

	att, err := scanAttendance(q.QueryRow(ctx, query,
		correction.EmployeeID,
		correction.Date,
		correction.CheckInTime,
		correction.CheckOutTime,
		string(correction.Status),
		correction.IsVerified,
		string(correction.VerificationStatus),
		string(correction.Method),
		correction.Reason,
	), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrCorrectionNotAllowed
		}
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance correction: %w", err)
	}
	return att, nil
}

// UpdateVerification implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateVerification(ctx context.Context, id string, status attendance.VerificationStatus, verified bool) (attendance.Attendance, error) {
	if !validID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET verification_status = $2, is_verified = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + returningColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, id, string(status), verified), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance verification: %w", err)
	}
	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, updated attendance.Attendance) (attendance.Attendance, error) {
	if !validID(updated.ID) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET date = $2, check_in_time = $3, check_out_time = $4, status = $5,
			is_verified = $6, verification_status = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + returningColumns

	att, err := scanAttendance(q.QueryRow(ctx, query,
		updated.ID,
		updated.Date,
		updated.CheckInTime,
		updated.CheckOutTime,
		string(updated.Status),
		updated.IsVerified,
		string(updated.VerificationStatus),
	), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		if isUniqueViolation(err, "uk_attendance_employee_date") {
			return attendance.Attendance{}, attendance.ErrDateTaken
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return att, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Attendance, error) {
	if !validID(employeeID) {
		return []attendance.Attendance{}, nil
	}
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		ORDER BY a.date DESC
		LIMIT $2`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}

// ListByCompany implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByCompany(ctx context.Context, filter attendance.CompanyFilter) ([]attendance.Attendance, error) {
	if !validID(filter.CompanyID) {
		return []attendance.Attendance{}, nil
	}
	q := GetQuerier(ctx, a.db)

	var verificationStatus *string
	if filter.VerificationStatus != nil {
		s := string(*filter.VerificationStatus)
		verificationStatus = &s
	}

	query := `SELECT ` + attendanceColumns + `, u.name, u.email, e.designation, e.department
		FROM attendances a
		INNER JOIN employees e ON e.id = a.employee_id
		INNER JOIN users u ON u.id = e.user_id
		WHERE e.company_id = $1
		  AND ($2::text IS NULL OR a.verification_status = $2)
		  AND ($3::date IS NULL OR a.date >= $3)
		  AND ($4::date IS NULL OR a.date <= $4)
		ORDER BY a.date DESC, u.name`

	rows, err := q.Query(ctx, query, filter.CompanyID, verificationStatus, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list company attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}
