package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceCreateIfAbsent_SingleWinner(t *testing.T) {
	repo := NewAttendanceRepository(NewStore())
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	var created int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := repo.CreateIfAbsent(context.Background(), attendance.Attendance{
				EmployeeID: "e-1",
				Date:       day,
				Status:     attendance.StatusPresent,
			})
			if err == nil && ok {
				atomic.AddInt32(&created, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created)
}

func TestAttendanceCheckOut_Conditional(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(NewStore())

	_, err := repo.CheckOut(ctx, "missing", time.Now(), attendance.Location{})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	saved, _, err := repo.CreateIfAbsent(ctx, attendance.Attendance{EmployeeID: "e-1", Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	_, err = repo.CheckOut(ctx, saved.ID, time.Now(), attendance.Location{Latitude: 1, Longitude: 2})
	require.NoError(t, err)

	_, err = repo.CheckOut(ctx, saved.ID, time.Now(), attendance.Location{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestLeaveApplicationCreate_RejectsActiveDuplicateStart(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveApplicationRepository(NewStore())
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, leave.LeaveApplication{EmployeeID: "e-1", StartDate: start, EndDate: start, DaysCount: 1, Status: leave.StatusPending})
	require.NoError(t, err)

	_, err = repo.Create(ctx, leave.LeaveApplication{EmployeeID: "e-1", StartDate: start, EndDate: start, DaysCount: 1, Status: leave.StatusPending})
	assert.ErrorIs(t, err, leave.ErrDuplicateApplication)

	_, err = repo.UpdateStatus(ctx, first.ID, leave.StatusRejected, "hr-1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, leave.LeaveApplication{EmployeeID: "e-1", StartDate: start, EndDate: start, DaysCount: 1, Status: leave.StatusPending})
	assert.NoError(t, err)
}

func TestTransactor_Nested(t *testing.T) {
	tx := NewTransactor(NewStore())
	calls := 0
	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
