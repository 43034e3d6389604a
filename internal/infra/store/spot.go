package store

import (
	"context"
	"errors"

	"spotstay/internal/infra"
	"spotstay/internal/infra/db"
	"spotstay/internal/usecase/queries"
	"spotstay/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SpotReadStore is the spot catalog collaborator: the booking engine
// only ever reads identifier, owner and price from it.
type SpotReadStore struct {
	db db.DBTX
}

func NewSpotReadStore(dbtx db.DBTX) *SpotReadStore {
	return &SpotReadStore{db: dbtx}
}

func (r *SpotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.SpotSnapshot, error) {
	const query = `SELECT id, owner_id, price_cents FROM spots WHERE id = $1`

	var snap shared.SpotSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.OwnerID, &snap.PriceCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("spot not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to find spot by ID", err)
	}

	return &snap, nil
}

func (r *SpotReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.SpotView, error) {
	const query = `
		SELECT s.id, s.owner_id, u.name, s.title, s.description, s.location, s.price_cents, s.created_at
		FROM spots s
		JOIN users u ON u.id = s.owner_id
		WHERE s.id = $1`

	var v queries.SpotView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.OwnerID, &v.OwnerName, &v.Title,
		&v.Description, &v.Location, &v.PriceCents, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("spot not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to load spot view", err)
	}

	return &v, nil
}

func (r *SpotReadStore) List(ctx context.Context) ([]*queries.SpotView, error) {
	const query = `
		SELECT s.id, s.owner_id, u.name, s.title, s.description, s.location, s.price_cents, s.created_at
		FROM spots s
		JOIN users u ON u.id = s.owner_id
		ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, wrapPgErr("failed to list spots", err)
	}
	defer rows.Close()

	result := make([]*queries.SpotView, 0)
	for rows.Next() {
		var v queries.SpotView
		err := rows.Scan(
			&v.ID, &v.OwnerID, &v.OwnerName, &v.Title,
			&v.Description, &v.Location, &v.PriceCents, &v.CreatedAt)
		if err != nil {
			return nil, wrapPgErr("failed to scan spot row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate spot rows", err)
	}

	return result, nil
}

func (r *SpotReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.SpotView, error) {
	const query = `
		SELECT s.id, s.owner_id, u.name, s.title, s.description, s.location, s.price_cents, s.created_at
		FROM spots s
		JOIN users u ON u.id = s.owner_id
		WHERE s.owner_id = $1
		ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, wrapPgErr("failed to list owner spots", err)
	}
	defer rows.Close()

	result := make([]*queries.SpotView, 0)
	for rows.Next() {
		var v queries.SpotView
		err := rows.Scan(
			&v.ID, &v.OwnerID, &v.OwnerName, &v.Title,
			&v.Description, &v.Location, &v.PriceCents, &v.CreatedAt)
		if err != nil {
			return nil, wrapPgErr("failed to scan spot row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate spot rows", err)
	}

	return result, nil
}
