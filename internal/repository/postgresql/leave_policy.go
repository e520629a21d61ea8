package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leavePolicyRepositoryImpl struct {
	db *database.DB
}

func NewLeavePolicyRepository(db *database.DB) leave.LeavePolicyRepository {
	return &leavePolicyRepositoryImpl{db: db}
}

const leavePolicyColumns = `id, name, max_days_per_year, carry_forward, requires_approval, applicable_roles, created_at, updated_at`

func scanLeavePolicy(row pgx.Row) (leave.LeavePolicy, error) {
	var p leave.LeavePolicy
	err := row.Scan(
		&p.ID, &p.Name, &p.MaxDaysPerYear, &p.CarryForward, &p.RequiresApproval, &p.ApplicableRoles,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func rolesArg(roles []string) []string {
	if roles == nil {
		return []string{}
	}
	return roles
}

// Create implements leave.LeavePolicyRepository.
func (r *leavePolicyRepositoryImpl) Create(ctx context.Context, policy leave.LeavePolicy) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_policies (name, max_days_per_year, carry_forward, requires_approval, applicable_roles)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + leavePolicyColumns

	created, err := scanLeavePolicy(q.QueryRow(ctx, query,
		policy.Name, policy.MaxDaysPerYear, policy.CarryForward, policy.RequiresApproval, rolesArg(policy.ApplicableRoles),
	))
	if err != nil {
		if isUniqueViolation(err, "uk_leave_policy_name") {
			return leave.LeavePolicy{}, leave.ErrPolicyNameExists
		}
		return leave.LeavePolicy{}, fmt.Errorf("failed to create leave policy: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeavePolicyRepository.
func (r *leavePolicyRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeavePolicy, error) {
	if !validID(id) {
		return leave.LeavePolicy{}, leave.ErrPolicyNotFound
	}
	q := GetQuerier(ctx, r.db)

	p, err := scanLeavePolicy(q.QueryRow(ctx, `SELECT `+leavePolicyColumns+` FROM leave_policies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeavePolicy{}, leave.ErrPolicyNotFound
		}
		return leave.LeavePolicy{}, fmt.Errorf("failed to get leave policy: %w", err)
	}
	return p, nil
}

// List implements leave.LeavePolicyRepository.
func (r *leavePolicyRepositoryImpl) List(ctx context.Context) ([]leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+leavePolicyColumns+` FROM leave_policies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave policies: %w", err)
	}
	defer rows.Close()

	policies := []leave.LeavePolicy{}
	for rows.Next() {
		p, err := scanLeavePolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave policy: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

// Update implements leave.LeavePolicyRepository.
func (r *leavePolicyRepositoryImpl) Update(ctx context.Context, policy leave.LeavePolicy) (leave.LeavePolicy, error) {
	if !validID(policy.ID) {
		return leave.LeavePolicy{}, leave.ErrPolicyNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_policies
		SET name = $2, max_days_per_year = $3, carry_forward = $4, requires_approval = $5,
			applicable_roles = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leavePolicyColumns

	updated, err := scanLeavePolicy(q.QueryRow(ctx, query,
		policy.ID, policy.Name, policy.MaxDaysPerYear, policy.CarryForward, policy.RequiresApproval,
		rolesArg(policy.ApplicableRoles),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeavePolicy{}, leave.ErrPolicyNotFound
		}
		if isUniqueViolation(err, "uk_leave_policy_name") {
			return leave.LeavePolicy{}, leave.ErrPolicyNameExists
		}
		return leave.LeavePolicy{}, fmt.Errorf("failed to update leave policy: %w", err)
	}
	return updated, nil
}
