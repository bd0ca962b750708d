package earningsrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/earningsrepo"
	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// EarningsRepositoryIntegrationTestSuite verifies earnings persistence
// against a real PostgreSQL instance.
type EarningsRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *earningsrepo.GormEarningsRepository
}

func (suite *EarningsRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&earningsrepo.EarningsDTO{}))
}

func (suite *EarningsRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE daily_earnings").Error)
	suite.repository = earningsrepo.NewGormEarningsRepository(suite.db)
}

func (suite *EarningsRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *EarningsRepositoryIntegrationTestSuite) newRecord(day kernel.Day, reward string) *earnings.Record {
	record, err := earnings.NewRecord(kernel.NewUUID(), day)
	suite.Require().NoError(err)
	money, err := kernel.MoneyFromString(reward)
	suite.Require().NoError(err)
	suite.Require().NoError(record.Apply(money))
	return record
}

func (suite *EarningsRepositoryIntegrationTestSuite) TestSaveAndGet_RoundTrip() {
	ctx := context.Background()
	record := suite.newRecord(kernel.Today(), "7.25")

	suite.Require().NoError(suite.repository.Save(ctx, record))

	got, err := suite.repository.Get(ctx, record.CourierID(), record.Day())
	suite.Require().NoError(err)
	suite.Equal(1, got.JobsCompleted())
	suite.Equal("7.25", got.TotalEarned().String())
}

func (suite *EarningsRepositoryIntegrationTestSuite) TestSave_UpsertsExistingRecord() {
	ctx := context.Background()
	record := suite.newRecord(kernel.Today(), "5.00")
	suite.Require().NoError(suite.repository.Save(ctx, record))

	more, err := kernel.MoneyFromString("7.50")
	suite.Require().NoError(err)
	suite.Require().NoError(record.Apply(more))
	suite.Require().NoError(suite.repository.Save(ctx, record))

	got, err := suite.repository.Get(ctx, record.CourierID(), record.Day())
	suite.Require().NoError(err)
	suite.Equal(2, got.JobsCompleted())
	suite.Equal("12.50", got.TotalEarned().String())
}

func (suite *EarningsRepositoryIntegrationTestSuite) TestGet_MissingRecord_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID(), kernel.Today())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *EarningsRepositoryIntegrationTestSuite) TestPruneBefore_RemovesOnlyStaleRecords() {
	ctx := context.Background()
	today := kernel.Today()
	stale := suite.newRecord(today.AddDays(-3), "5.00")
	fresh := suite.newRecord(today, "7.50")
	suite.Require().NoError(suite.repository.Save(ctx, stale))
	suite.Require().NoError(suite.repository.Save(ctx, fresh))

	pruned, err := suite.repository.PruneBefore(ctx, today.AddDays(-1))
	suite.Require().NoError(err)
	suite.Equal(int64(1), pruned)

	_, err = suite.repository.Get(ctx, stale.CourierID(), stale.Day())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.repository.Get(ctx, fresh.CourierID(), fresh.Day())
	suite.Require().NoError(err)
}

func TestEarningsRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(EarningsRepositoryIntegrationTestSuite))
}
