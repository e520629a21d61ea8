package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds a migrated connection to the integration database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies migrations.
// Tests are skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres integration test")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, 5, 1)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, database.Migrate(ctx, db))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes every row from the application tables
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"salaries",
		"leave_applications",
		"leave_policies",
		"attendances",
		"work_locations",
		"employees",
		"users",
		"companies",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database pool
func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}

// seedEmployee inserts a company, a user and the user's employee record.
func (s *TestDatabaseSetup) seedEmployee(t *testing.T, ctx context.Context, email string) (companyID, userID, employeeID string) {
	t.Helper()

	err := s.DB.QueryRow(ctx, `INSERT INTO companies (name) VALUES ('Test Company') RETURNING id`).Scan(&companyID)
	require.NoError(t, err)

	err = s.DB.QueryRow(ctx, `
		INSERT INTO users (company_id, name, email, role)
		VALUES ($1, 'Test Employee', $2, 'ENGINEER')
		RETURNING id
	`, companyID, email).Scan(&userID)
	require.NoError(t, err)

	err = s.DB.QueryRow(ctx, `
		INSERT INTO employees (user_id, company_id, designation, department)
		VALUES ($1, $2, 'Software Engineer', 'Engineering')
		RETURNING id
	`, userID, companyID).Scan(&employeeID)
	require.NoError(t, err)

	return companyID, userID, employeeID
}
