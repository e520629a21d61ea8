package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveApplicationRepositoryImpl struct {
	db *database.DB
}

func NewLeaveApplicationRepository(db *database.DB) leave.LeaveApplicationRepository {
	return &leaveApplicationRepositoryImpl{db: db}
}

const leaveApplicationColumns = `
	la.id, la.employee_id, la.leave_policy_id, la.start_date, la.end_date, la.days_count,
	la.reason, la.status, la.approved_by, la.created_at, la.updated_at
`

const leaveApplicationJoinedSelect = `SELECT ` + leaveApplicationColumns + `,
		u.name, u.email, e.designation, e.department, lp.name
	FROM leave_applications la
	INNER JOIN employees e ON e.id = la.employee_id
	INNER JOIN users u ON u.id = e.user_id
	INNER JOIN leave_policies lp ON lp.id = la.leave_policy_id
`

func scanLeaveApplication(row pgx.Row, joined bool) (leave.LeaveApplication, error) {
	var (
		la     leave.LeaveApplication
		status string
	)
	dest := []any{
		&la.ID, &la.EmployeeID, &la.LeavePolicyID, &la.StartDate, &la.EndDate, &la.DaysCount,
		&la.Reason, &status, &la.ApprovedBy, &la.CreatedAt, &la.UpdatedAt,
	}
	if joined {
		dest = append(dest, &la.EmployeeName, &la.EmployeeEmail, &la.Designation, &la.Department, &la.PolicyName)
	}
	if err := row.Scan(dest...); err != nil {
		return leave.LeaveApplication{}, err
	}
	la.Status = leave.Status(status)
	return la, nil
}

func collectLeaveApplications(rows pgx.Rows, joined bool) ([]leave.LeaveApplication, error) {
	defer rows.Close()

	apps := []leave.LeaveApplication{}
	for rows.Next() {
		la, err := scanLeaveApplication(rows, joined)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave application: %w", err)
		}
		apps = append(apps, la)
	}
	return apps, rows.Err()
}

// Create implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) Create(ctx context.Context, application leave.LeaveApplication) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications AS la (employee_id, leave_policy_id, start_date, end_date, days_count, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + leaveApplicationColumns

	created, err := scanLeaveApplication(q.QueryRow(ctx, query,
		application.EmployeeID,
		application.LeavePolicyID,
		application.StartDate,
		application.EndDate,
		application.DaysCount,
		application.Reason,
		string(application.Status),
	), false)
	if err != nil {
		if isUniqueViolation(err, "uk_leave_application_active_start") {
			return leave.LeaveApplication{}, leave.ErrDuplicateApplication
		}
		return leave.LeaveApplication{}, fmt.Errorf("failed to create leave application: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	if !validID(id) {
		return leave.LeaveApplication{}, leave.ErrApplicationNotFound
	}
	q := GetQuerier(ctx, r.db)

	la, err := scanLeaveApplication(q.QueryRow(ctx, leaveApplicationJoinedSelect+` WHERE la.id = $1`, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveApplication{}, leave.ErrApplicationNotFound
		}
		return leave.LeaveApplication{}, fmt.Errorf("failed to get leave application: %w", err)
	}
	return la, nil
}

// ExistsActiveByStartDate implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ExistsActiveByStartDate(ctx context.Context, employeeID string, startDate time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_applications
			WHERE employee_id = $1 AND start_date = $2 AND status IN ('PENDING', 'APPROVED')
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, startDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check duplicate leave application: %w", err)
	}
	return exists, nil
}

// SumApprovedDays implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) SumApprovedDays(ctx context.Context, employeeID, policyID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days_count), 0)
		FROM leave_applications
		WHERE employee_id = $1
		  AND leave_policy_id = $2
		  AND status = 'APPROVED'
		  AND start_date BETWEEN $3 AND $4
	`

	var total int
	if err := q.QueryRow(ctx, query, employeeID, policyID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum approved leave days: %w", err)
	}
	return total, nil
}

// ListApprovedOverlapping implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveApplicationColumns + `
		FROM leave_applications la
		WHERE la.employee_id = $1
		  AND la.status = 'APPROVED'
		  AND la.start_date <= $3
		  AND la.end_date >= $2
		ORDER BY la.start_date`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping leave: %w", err)
	}
	return collectLeaveApplications(rows, false)
}

// ListPending implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ListPending(ctx context.Context) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveApplicationJoinedSelect+` WHERE la.status = 'PENDING' ORDER BY la.created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave: %w", err)
	}
	return collectLeaveApplications(rows, true)
}

// ListByEmployee implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveApplicationJoinedSelect+` WHERE la.employee_id = $1 ORDER BY la.created_at DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	return collectLeaveApplications(rows, true)
}

// UpdateStatus implements leave.LeaveApplicationRepository.
func (r *leaveApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, approvedBy string) (leave.LeaveApplication, error) {
	if !validID(id) {
		return leave.LeaveApplication{}, leave.ErrApplicationNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications AS la
		SET status = $2, approved_by = $3, updated_at = NOW()
		WHERE la.id = $1 AND la.status = 'PENDING'
		RETURNING ` + leaveApplicationColumns

	var approver *string
	if validID(approvedBy) {
		approver = &approvedBy
	}

	updated, err := scanLeaveApplication(q.QueryRow(ctx, query, id, string(status), approver), false)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveApplication{}, fmt.Errorf("failed to update leave application status: %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return leave.LeaveApplication{}, err
	}
	return leave.LeaveApplication{}, leave.ErrApplicationAlreadyDecided
}
