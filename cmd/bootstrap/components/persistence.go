package components

import (
	"spotstay/internal/infra/db"
	"spotstay/internal/infra/store"
	"spotstay/internal/infra/uow"
	"spotstay/internal/usecase/commands"
	"spotstay/internal/usecase/queries"
	"spotstay/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	writeModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Booking
		fx.Annotate(
			store.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Spot
		fx.Annotate(
			store.NewSpotReadStore,
			fx.As(new(shared.SpotReadStore)),
			fx.As(new(queries.SpotReadStore)),
		),
		// User
		fx.Annotate(
			store.NewUserStore,
			fx.As(new(commands.UserRepository)),
			fx.As(new(shared.UserDirectory)),
			fx.As(new(queries.UserReadStore)),
		),
	),
)

var writeModule = fx.Module("persistence/write",
	fx.Provide(
		store.NewBookingStore,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
