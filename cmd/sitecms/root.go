package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/iota-uz/sitecms/modules"
	"github.com/iota-uz/sitecms/pkg/application"
	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/configuration"
	"github.com/iota-uz/sitecms/pkg/eventbus"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sitecms",
		Short:         "Site CMS maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newNormalizeCmd())
	cmd.AddCommand(newMoveCmd())
	cmd.AddCommand(newSessionsCmd())
	cmd.AddCommand(newArchCheckCmd())
	return cmd
}

// instance is a loaded application plus a context carrying its pool.
type instance struct {
	app  application.Application
	ctx  context.Context
	pool *pgxpool.Pool
}

func (r *instance) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

func bootstrap(ctx context.Context) (*instance, error) {
	conf := configuration.Use()
	logger := conf.Logger()

	var pool *pgxpool.Pool
	if !conf.UsesMemoryStore() {
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		var err error
		if pool, err = pgxpool.New(dialCtx, conf.Database.Opts); err != nil {
			return nil, errors.Wrap(err, "connect to database")
		}
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app); err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, errors.Wrap(err, "load modules")
	}
	if pool != nil {
		ctx = composables.WithPool(ctx, pool)
	}
	return &instance{app: app, ctx: ctx, pool: pool}, nil
}

func main() {
	defer configuration.Use().Unload()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
