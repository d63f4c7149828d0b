package geofence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore persists geofences in PostgreSQL. This is the shared
// implementation for multi-instance deployments; open the *sql.DB through the
// pgx stdlib driver.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema creates the geofences table. Exposed so integration tests and the
// server bootstrap can run it against a fresh database.
const Schema = `
CREATE TABLE IF NOT EXISTS geofences (
	id                    TEXT NOT NULL,
	owner_type            TEXT NOT NULL,
	owner_id              TEXT NOT NULL,
	name                  TEXT NOT NULL,
	type                  TEXT NOT NULL,
	center_lat            DOUBLE PRECISION NOT NULL,
	center_lng            DOUBLE PRECISION NOT NULL,
	radius_meters         INTEGER NOT NULL,
	breach_policy         TEXT NOT NULL,
	notifications_enabled BOOLEAN NOT NULL,
	created_at            TIMESTAMPTZ NOT NULL,
	updated_at            TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (owner_type, owner_id, id)
);
CREATE INDEX IF NOT EXISTS geofences_owner_idx ON geofences (owner_type, owner_id, created_at);
`

const geofenceColumns = `id, owner_type, owner_id, name, type, center_lat, center_lng,
	radius_meters, breach_policy, notifications_enabled, created_at, updated_at`

func (s *PostgresStore) Insert(ctx context.Context, g Geofence) error {
	query := `
		INSERT INTO geofences (` + geofenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		g.ID, g.Owner.Type, g.Owner.ID, g.Name, g.Type,
		g.Center.Lat, g.Center.Lng, g.RadiusMeters, g.BreachPolicy,
		g.NotificationsEnabled, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert geofence: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, owner Owner, id string) (Geofence, error) {
	query := `
		SELECT ` + geofenceColumns + `
		FROM geofences
		WHERE owner_type = $1 AND owner_id = $2 AND id = $3
	`
	row := s.db.QueryRowContext(ctx, query, owner.Type, owner.ID, id)
	g, err := scanGeofence(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Geofence{}, ErrNotFound
		}
		return Geofence{}, fmt.Errorf("get geofence: %w", err)
	}
	return g, nil
}

func (s *PostgresStore) Update(ctx context.Context, g Geofence) error {
	query := `
		UPDATE geofences
		SET name = $4, type = $5, center_lat = $6, center_lng = $7,
			radius_meters = $8, breach_policy = $9, notifications_enabled = $10,
			updated_at = $11
		WHERE owner_type = $1 AND owner_id = $2 AND id = $3
	`
	res, err := s.db.ExecContext(ctx, query,
		g.Owner.Type, g.Owner.ID, g.ID, g.Name, g.Type,
		g.Center.Lat, g.Center.Lng, g.RadiusMeters, g.BreachPolicy,
		g.NotificationsEnabled, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update geofence: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, owner Owner, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM geofences WHERE owner_type = $1 AND owner_id = $2 AND id = $3`,
		owner.Type, owner.ID, id,
	)
	if err != nil {
		return fmt.Errorf("delete geofence: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListByOwner(ctx context.Context, owner Owner) ([]Geofence, error) {
	query := `
		SELECT ` + geofenceColumns + `
		FROM geofences
		WHERE owner_type = $1 AND owner_id = $2
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, owner.Type, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list geofences: %w", err)
	}
	defer rows.Close()
	return collectGeofences(rows)
}

func (s *PostgresStore) ListForFamilies(ctx context.Context, familyIDs []string) ([]Geofence, error) {
	if len(familyIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + geofenceColumns + `
		FROM geofences
		WHERE owner_type = $1 AND owner_id = ANY($2)
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, OwnerFamily, pq.Array(familyIDs))
	if err != nil {
		return nil, fmt.Errorf("list family geofences: %w", err)
	}
	defer rows.Close()
	return collectGeofences(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeofence(row rowScanner) (Geofence, error) {
	var g Geofence
	err := row.Scan(
		&g.ID, &g.Owner.Type, &g.Owner.ID, &g.Name, &g.Type,
		&g.Center.Lat, &g.Center.Lng, &g.RadiusMeters, &g.BreachPolicy,
		&g.NotificationsEnabled, &g.CreatedAt, &g.UpdatedAt,
	)
	return g, err
}

func collectGeofences(rows *sql.Rows) ([]Geofence, error) {
	var out []Geofence
	for rows.Next() {
		g, err := scanGeofence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan geofence: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate geofences: %w", err)
	}
	return out, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
