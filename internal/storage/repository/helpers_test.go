package repository

import (
	"context"
	"testing"
	"time"

	"github.com/magabrotheeeer/community-kitchen/internal/migrations"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const migrationsDir = "../../../migrations"

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "failed to start container")

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	require.NoError(t, migrations.Run(storage.DB, migrationsDir))
	require.NoError(t, CheckDatabaseReady(ctx, storage))
	return storage
}

// testDataFactory создаёт тестовые данные напрямую через SQL.
type testDataFactory struct {
	t       *testing.T
	storage *Storage
}

func newTestDataFactory(t *testing.T, storage *Storage) *testDataFactory {
	return &testDataFactory{t: t, storage: storage}
}

func (f *testDataFactory) user(username string) string {
	f.t.Helper()
	uid, err := f.storage.RegisterUser(context.Background(), models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "hashedpassword",
		Role:         "user",
	})
	require.NoError(f.t, err)
	return uid
}

func (f *testDataFactory) campaign(owner string, c models.Campaign) int {
	f.t.Helper()
	c.UserUID = owner
	if c.Description == "" {
		c.Description = "Warm meals for families in need every evening"
	}
	if c.Goal == 0 {
		c.Goal = 1000
	}
	if c.Category == "" {
		c.Category = "food-pantry"
	}
	if c.Location == "" {
		c.Location = "Austin, TX"
	}
	if c.EndDate.IsZero() {
		c.EndDate = time.Now().AddDate(0, 1, 0)
	}
	id, err := f.storage.CreateCampaign(context.Background(), c)
	require.NoError(f.t, err)
	return id
}

func (f *testDataFactory) setRaised(id int, raised float64) {
	f.t.Helper()
	_, err := f.storage.DB.Exec(`UPDATE campaigns SET raised = $1 WHERE id = $2`, raised, id)
	require.NoError(f.t, err)
}

func (f *testDataFactory) donation(campaignID int, donorUID string, amount float64, anonymous bool) int {
	f.t.Helper()
	id, err := f.storage.CreateDonation(context.Background(), models.Donation{
		CampaignID: campaignID,
		DonorUID:   donorUID,
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane@example.com",
		Anonymous:  anonymous,
		CoverFees:  true,
		Amount:     amount,
		Total:      amount,
	})
	require.NoError(f.t, err)
	return id
}
