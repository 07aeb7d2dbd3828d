// README: Place store backed by PostgreSQL.
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Places implements Source. Rows come back in id order.
func (s *Store) Places(ctx context.Context) ([]Place, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, category, description, location, type,
               COALESCE(entry_fee, ''), COALESCE(image, ''), lat, lng
        FROM places
        ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Place
	for rows.Next() {
		var p Place
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &p.Desc, &p.Location, &p.Type,
			&p.EntryFee, &p.Image, &p.Lat, &p.Lng,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Upsert writes places in one batch, replacing rows with the same id. Within
// one call the first record for an id wins, as it does in a Snapshot.
func (s *Store) Upsert(ctx context.Context, places []Place) error {
	places = firstByID(places)
	if len(places) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range places {
		batch.Queue(`
            INSERT INTO places (id, name, category, description, location, type, entry_fee, image, lat, lng)
            VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10)
            ON CONFLICT (id) DO UPDATE SET
                name = EXCLUDED.name,
                category = EXCLUDED.category,
                description = EXCLUDED.description,
                location = EXCLUDED.location,
                type = EXCLUDED.type,
                entry_fee = EXCLUDED.entry_fee,
                image = EXCLUDED.image,
                lat = EXCLUDED.lat,
                lng = EXCLUDED.lng,
                updated_at = NOW()`,
			p.ID, p.Name, p.Category, p.Desc, p.Location, p.Type, p.EntryFee, p.Image, p.Lat, p.Lng,
		)
	}
	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert places: %w", err)
	}
	return nil
}

// firstByID drops every record whose id already appeared earlier in places.
// ON CONFLICT DO UPDATE would otherwise let the last one win.
func firstByID(places []Place) []Place {
	seen := make(map[int]struct{}, len(places))
	out := make([]Place, 0, len(places))
	for _, p := range places {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
