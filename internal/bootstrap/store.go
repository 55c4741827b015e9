package bootstrap

import (
	"context"
	"fmt"

	"github.com/Domenick1991/goaholidays/config"
	"github.com/Domenick1991/goaholidays/internal/repository"
	"github.com/Domenick1991/goaholidays/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles the repositories of the configured driver with the supervisor
// that tracks its reachability.
type Store struct {
	Bookings   repository.BookingRepository
	Enquiries  repository.EnquiryRepository
	Supervisor *storage.Supervisor

	close func(ctx context.Context) error
}

// OpenStore builds the store for cfg.Driver. No connection is attempted here;
// the caller starts Supervisor.Run to connect in the background.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	opts := storage.Options{
		Name:         cfg.Driver,
		RetryDelay:   cfg.RetryDelay(),
		PingTimeout:  cfg.PingTimeout(),
		PingInterval: cfg.PingInterval(),
		MaxAttempts:  cfg.MaxConnectAttempts,
	}

	switch cfg.Driver {
	case config.DriverMongo:
		mongoStore, err := repository.NewMongoStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts.OnConnect = mongoStore.EnsureIndexes
		return &Store{
			Bookings:   mongoStore.Bookings(),
			Enquiries:  mongoStore.Enquiries(),
			Supervisor: storage.NewSupervisor(mongoStore, opts),
			close:      mongoStore.Close,
		}, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("configure postgres pool: %w", err)
		}
		opts.OnConnect = func(ctx context.Context) error {
			return repository.EnsurePGSchema(ctx, pool)
		}
		return &Store{
			Bookings:   repository.NewBookingRepository(pool),
			Enquiries:  repository.NewEnquiryRepository(pool),
			Supervisor: storage.NewSupervisor(pool, opts),
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DriverMemory:
		memory := repository.NewMemoryStore(nil)
		return &Store{
			Bookings:   memory.Bookings(),
			Enquiries:  memory.Enquiries(),
			Supervisor: storage.NewSupervisor(memory, opts),
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
