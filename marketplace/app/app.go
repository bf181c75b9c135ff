package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"goji.io"

	"github.com/curio/marketplace/lib/db"
	"github.com/curio/marketplace/lib/env"
	"github.com/curio/marketplace/lib/errors"
	"github.com/curio/marketplace/lib/livemode"
	"github.com/curio/marketplace/lib/logging"
	"github.com/curio/marketplace/lib/recoverer"
	"github.com/curio/marketplace/lib/requestlogger"
	"github.com/curio/marketplace/marketplace"
	"github.com/curio/marketplace/marketplace/lib/authentication"
	"github.com/facebookgo/grace/gracehttp"

	// force initialization of schemas
	_ "github.com/curio/marketplace/marketplace/model/schemas"
)

// BackgroundContextFromFlags initializes a background context fully loaded
// with everything that could be extracted from the flags.
func BackgroundContextFromFlags(
	envFlag string,
	dsnFlag string,
	hstFlag string,
	prtFlag string,
) (context.Context, error) {
	ctx := context.Background()

	marketplaceEnv := env.Env{
		Environment: env.QA,
		Config:      map[env.ConfigKey]string{},
	}
	if envFlag == "production" || envFlag == "prod" {
		marketplaceEnv.Environment = env.Production
	}
	marketplaceEnv.Config[marketplace.EnvCfgHost] = hstFlag

	port := marketplace.DefaultPort[marketplaceEnv.Environment]
	if prtFlag != "" {
		port = prtFlag
	}
	marketplaceEnv.Config[marketplace.EnvCfgPort] = port

	ctx = env.With(ctx, &marketplaceEnv)

	marketplaceDB, err := db.NewDBForDSN(ctx,
		dsnFlag,
		fmt.Sprintf("sqlite3://~/.marketplace/marketplace-%s.db",
			env.Get(ctx).Environment))
	if err != nil {
		return nil, errors.Trace(err)
	}
	err = db.CreateDBTables(ctx, "marketplace", marketplaceDB)
	if err != nil {
		return nil, errors.Trace(err)
	}
	ctx = db.WithDB(ctx, marketplaceDB)

	return ctx, nil
}

// Build initializes the app and its web stack.
func Build(
	ctx context.Context,
) (*goji.Mux, error) {
	mux := goji.NewMux()
	mux.Use(requestlogger.Middleware)
	mux.Use(recoverer.Middleware)
	mux.Use(db.Middleware(db.GetDB(ctx)))
	mux.Use(env.Middleware(env.Get(ctx)))
	mux.Use(livemode.Middleware)
	mux.Use(authentication.Middleware)

	logging.Logf(ctx, "Initializing: environment=%s host=%s port=%s",
		env.Get(ctx).Environment,
		marketplace.GetHost(ctx), marketplace.GetPort(ctx))

	(&Controller{}).Bind(mux)

	return mux, nil
}

// Serve the goji mux.
func Serve(
	ctx context.Context,
	mux *goji.Mux,
) error {
	s := &http.Server{
		Addr:         fmt.Sprintf(":%s", marketplace.GetPort(ctx)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		Handler:      mux,
	}

	logging.Logf(ctx, "Listening: port=%s", marketplace.GetPort(ctx))

	err := gracehttp.Serve(s)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}
