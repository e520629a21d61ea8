// Package memory keeps every entity in process memory. It backs unit tests and
// DB_DRIVER=memory development runs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	employees    map[string]employee.Employee
	locations    map[string]location.WorkLocation
	attendances  map[string]attendance.Attendance
	policies     map[string]leave.LeavePolicy
	applications map[string]leave.LeaveApplication
	salaries     map[string]payroll.Salary // keyed by employee id

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees:    make(map[string]employee.Employee),
		locations:    make(map[string]location.WorkLocation),
		attendances:  make(map[string]attendance.Attendance),
		policies:     make(map[string]leave.LeavePolicy),
		applications: make(map[string]leave.LeaveApplication),
		salaries:     make(map[string]payroll.Salary),
		now:          time.Now,
	}
}

type txKey struct{}

type transactor struct {
	s *Store
}

// WithinTransaction serializes units of work against the store. It provides
// isolation between transactions but no rollback.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

func NewTransactor(s *Store) database.Transactor {
	return &transactor{s: s}
}
