package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"HealthRecords/internal/common/commonerr"
	"HealthRecords/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Repository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock, New(db, "postgres")
}

func TestListByOwner_Postgres(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"owner_id", "name", "health_card", "blood_type", "date_of_birth"}).
		AddRow("user-1", "Jane", "HC-2", "A+", "1990-06-15").
		AddRow("user-1", "John", "HC-1", "O-", "1985-01-02")

	mock.ExpectQuery(`SELECT owner_id, name, health_card, blood_type, date_of_birth\s+FROM personal_records\s+WHERE owner_id = \$1\s+ORDER BY created_at DESC`).
		WithArgs("user-1").
		WillReturnRows(rows)

	records, err := repo.ListByOwner(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "HC-2", records[0].HealthCard)
	assert.Equal(t, "Jane", records[0].Name)
	assert.Equal(t, "A+", records[0].BloodType)
	assert.Equal(t, "1990-06-15", records[0].DateOfBirth)
	assert.Equal(t, "user-1", records[0].OwnerID)
	assert.Equal(t, "HC-1", records[1].HealthCard)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByOwner_QueryError(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	mock.ExpectQuery(`SELECT owner_id`).
		WithArgs("user-1").
		WillReturnError(errors.New("connection reset"))

	records, err := repo.ListByOwner(context.Background(), "user-1")

	assert.Error(t, err)
	assert.Nil(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByOwner_EmptyOwnerSkipsQuery(t *testing.T) {
	_, mock, repo := setupMockDB(t)

	records, err := repo.ListByOwner(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), &config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorIs(t, err, commonerr.ErrUnknownDriver)
}

func setupSqlite(t *testing.T) *Repository {
	t.Helper()
	repo, err := Connect(context.Background(), &config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func insert(t *testing.T, repo *Repository, owner, name, card, blood, dob, createdAt string) {
	t.Helper()
	_, err := repo.Db.Exec(
		`INSERT INTO personal_records (owner_id, name, health_card, blood_type, date_of_birth, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		owner, name, card, blood, dob, createdAt,
	)
	require.NoError(t, err)
}

func TestListByOwner_SqliteOwnerFilterAndOrder(t *testing.T) {
	repo := setupSqlite(t)

	insert(t, repo, "user-1", "Oldest", "HC-1", "A+", "1990-06-15", "2024-01-01 10:00:00")
	insert(t, repo, "user-2", "Stranger", "HC-9", "B+", "1970-03-03", "2024-01-02 10:00:00")
	insert(t, repo, "user-1", "Newest", "HC-3", "O-", "2001-12-31", "2024-03-01 10:00:00")
	insert(t, repo, "user-1", "Middle", "HC-2", "AB+", "1980-07-07", "2024-02-01 10:00:00")

	records, err := repo.ListByOwner(context.Background(), "user-1")
	require.NoError(t, err)

	var cards []string
	for _, r := range records {
		assert.Equal(t, "user-1", r.OwnerID)
		cards = append(cards, r.HealthCard)
	}
	assert.Equal(t, []string{"HC-3", "HC-2", "HC-1"}, cards)

	records, err = repo.ListByOwner(context.Background(), "user-3")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListByOwner_SqliteSameSecondNewestFirst(t *testing.T) {
	repo := setupSqlite(t)

	for _, card := range []string{"HC-first", "HC-second", "HC-third"} {
		_, err := repo.Db.Exec(
			`INSERT INTO personal_records (owner_id, name, health_card, blood_type, date_of_birth) VALUES (?, ?, ?, ?, ?)`,
			"u", "Jane", card, "A+", "1990-06-15",
		)
		require.NoError(t, err)
	}

	records, err := repo.ListByOwner(context.Background(), "u")
	require.NoError(t, err)

	var cards []string
	for _, r := range records {
		cards = append(cards, r.HealthCard)
	}
	assert.Equal(t, []string{"HC-third", "HC-second", "HC-first"}, cards)
}

func TestMigrate_Idempotent(t *testing.T) {
	repo := setupSqlite(t)
	require.NoError(t, repo.Migrate(context.Background()))
}

func TestSchema_UniqueHealthCardPerOwner(t *testing.T) {
	repo := setupSqlite(t)

	insert(t, repo, "user-1", "Jane", "HC-1", "A+", "1990-06-15", "2024-01-01 10:00:00")
	insert(t, repo, "user-2", "Jane", "HC-1", "A+", "1990-06-15", "2024-01-01 10:00:00")

	_, err := repo.Db.Exec(
		`INSERT INTO personal_records (owner_id, name, health_card, blood_type, date_of_birth) VALUES (?, ?, ?, ?, ?)`,
		"user-1", "Dup", "HC-1", "O+", "1999-01-01",
	)
	assert.Error(t, err)
}
