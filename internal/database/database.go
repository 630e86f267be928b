package database

import (
	"context"
	"database/sql"
	"fmt"

	"HealthRecords/internal/common/commonerr"
	"HealthRecords/internal/config"
	"HealthRecords/internal/entities"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS personal_records(
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		health_card TEXT NOT NULL,
		blood_type TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (owner_id, health_card));
	`

type Repository struct {
	Db     *sql.DB
	driver string
}

// New wraps an already opened handle. driver selects the placeholder style.
func New(db *sql.DB, driver string) *Repository {
	return &Repository{Db: db, driver: driver}
}

func Connect(ctx context.Context, cfg *config.DatabaseConfig) (*Repository, error) {
	op := "database.Connect()"

	var driverName string
	switch cfg.Driver {
	case "postgres":
		driverName = "postgres"
	case "sqlite":
		driverName = "sqlite"
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, commonerr.ErrUnknownDriver, cfg.Driver)
	}

	db, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open %s: %w", op, cfg.Driver, err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}
	// every sqlite :memory: connection is a separate database
	if cfg.Driver == "sqlite" && cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping %s: %w", op, cfg.Driver, err)
	}

	repo := New(db, cfg.Driver)
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

// Migrate creates the personal_records table if it does not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.Db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create personal_records table: %w", err)
	}
	return nil
}

func (r *Repository) placeholder() string {
	if r.driver == "sqlite" {
		return "?"
	}
	return "$1"
}

// orderBy sorts newest first. sqlite's CURRENT_TIMESTAMP has second
// resolution, so rows created in the same second fall back to insertion order.
func (r *Repository) orderBy() string {
	if r.driver == "sqlite" {
		return "created_at DESC, rowid DESC"
	}
	return "created_at DESC"
}

// ListByOwner returns the owner's records, most recently created first.
// An empty owner id matches nothing and does not hit the database.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]entities.Record, error) {
	if ownerID == "" {
		return nil, nil
	}

	query := `SELECT owner_id, name, health_card, blood_type, date_of_birth
		FROM personal_records
		WHERE owner_id = ` + r.placeholder() + `
		ORDER BY ` + r.orderBy()

	rows, err := r.Db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query personal_records: %w", err)
	}
	defer rows.Close()

	var records []entities.Record
	for rows.Next() {
		var rec entities.Record
		if err := rows.Scan(&rec.OwnerID, &rec.Name, &rec.HealthCard, &rec.BloodType, &rec.DateOfBirth); err != nil {
			return nil, fmt.Errorf("failed to scan personal_records row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate personal_records: %w", err)
	}

	return records, nil
}

func (r *Repository) Close() error {
	return r.Db.Close()
}
