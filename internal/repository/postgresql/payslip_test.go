package postgresql

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
	"github.com/payfolio/payslip-backend-go/internal/domain/taxyear"
	"github.com/payfolio/payslip-backend-go/internal/pkg/database"
)

var testRepoDB *database.DB

func repoTestInit(t *testing.T) {
	t.Helper()
	if testRepoDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testRepoDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
}

func truncateRepoTables(t *testing.T, ctx context.Context) {
	for _, table := range []string{"tax_year_aggregates", "payslips", "users"} {
		_, err := testRepoDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createRepoTestUser(t *testing.T, ctx context.Context) string {
	var userID string
	email := fmt.Sprintf("repo-%d@example.com", time.Now().UnixNano())
	err := testRepoDB.QueryRow(ctx, `
		INSERT INTO users (email, email_verified) VALUES ($1, true) RETURNING id
	`, email).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func insertTestPayslip(t *testing.T, ctx context.Context, repo payslip.PayslipRepository, userID string, period time.Time) payslip.PayslipRecord {
	t.Helper()
	stored, err := repo.Upsert(ctx, payslip.PayslipRecord{
		UserID: userID,
		Period: period,
		Fields: payslip.Fields{
			GrossPay: decimal.NewFromInt(5000),
			NetPay:   decimal.NewFromInt(3500),
			Tax:      decimal.NewFromInt(1000),
		},
		Verified: true,
	})
	require.NoError(t, err)
	return stored
}

func TestListByPeriodRangeAprilBelongsToOneTaxYear(t *testing.T) {
	repoTestInit(t)
	ctx := context.Background()
	truncateRepoTables(t, ctx)

	repo := NewPayslipRepository(testRepoDB)
	userID := createRepoTestUser(t, ctx)

	april := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	insertTestPayslip(t, ctx, repo, userID, april)

	// April 1 is on or before April 5, so the month sits in the tax year
	// ending that April.
	require.Equal(t, taxyear.Year(2023), taxyear.For(april))

	ending := taxyear.Year(2023)
	inEnding, err := repo.ListByPeriodRange(ctx, userID, ending.Start(), ending.End())
	require.NoError(t, err)
	require.Len(t, inEnding, 1)
	assert.True(t, inEnding[0].Period.Equal(april))

	starting := taxyear.Year(2024)
	inStarting, err := repo.ListByPeriodRange(ctx, userID, starting.Start(), starting.End())
	require.NoError(t, err)
	assert.Empty(t, inStarting, "an April payslip must not be selected by the following tax year's window")
}

func TestListByPeriodRangeWindowEdges(t *testing.T) {
	repoTestInit(t)
	ctx := context.Background()
	truncateRepoTables(t, ctx)

	repo := NewPayslipRepository(testRepoDB)
	userID := createRepoTestUser(t, ctx)

	may := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	insertTestPayslip(t, ctx, repo, userID, may)
	insertTestPayslip(t, ctx, repo, userID, march)

	year := taxyear.Year(2024)
	records, err := repo.ListByPeriodRange(ctx, userID, year.Start(), year.End())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Period.Equal(may))
	assert.True(t, records[1].Period.Equal(march))
}
