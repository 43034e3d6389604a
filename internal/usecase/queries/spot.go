package queries

import (
	"context"

	"spotstay/internal/infra"
	"spotstay/internal/pkg/errs"

	"github.com/google/uuid"
)

type SpotReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*SpotView, error)
	List(ctx context.Context) ([]*SpotView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SpotView, error)
}

// SpotQueries exposes the public catalog reads plus the owner's own
// listings. Listing management is out of scope; spots are written by
// the host-side application.
type SpotQueries interface {
	GetSpot(ctx context.Context, id uuid.UUID) (*SpotView, error)
	ListSpots(ctx context.Context) ([]*SpotView, error)
	ListOwnerSpots(ctx context.Context, ownerID uuid.UUID) ([]*SpotView, error)
}

type spotQueriesImpl struct {
	spots SpotReadStore
}

func NewSpotQueries(spots SpotReadStore) SpotQueries {
	return &spotQueriesImpl{spots: spots}
}

func (q *spotQueriesImpl) GetSpot(ctx context.Context, id uuid.UUID) (*SpotView, error) {
	spot, err := q.spots.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, errs.Mark(err, ErrReadFailed)
	}
	return spot, nil
}

func (q *spotQueriesImpl) ListSpots(ctx context.Context) ([]*SpotView, error) {
	spots, err := q.spots.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrReadFailed)
	}
	return spots, nil
}

func (q *spotQueriesImpl) ListOwnerSpots(ctx context.Context, ownerID uuid.UUID) ([]*SpotView, error) {
	spots, err := q.spots.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, ErrReadFailed)
	}
	return spots, nil
}
