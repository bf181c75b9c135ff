package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/curio/marketplace/lib/errors"
	"github.com/curio/marketplace/lib/livemode"
	"github.com/curio/marketplace/lib/logging"
	"github.com/curio/marketplace/marketplace/app"
	"github.com/curio/marketplace/marketplace/model"
	"github.com/joho/godotenv"
	"github.com/zenazn/goji/bind"
	"github.com/zenazn/goji/graceful"
	"goji.io"
)

var actFlag string

var envFlag string
var dsnFlag string
var hstFlag string
var prtFlag string

var usrFlag string
var pasFlag string

func init() {
	flag.StringVar(&actFlag, "action",
		"run", "The action to perform")

	flag.StringVar(&envFlag, "env",
		"qa", "The environment to run in (qa, production), default: qa")
	flag.StringVar(&dsnFlag, "db_dsn",
		"", "The DSN of the database to use, default: sqlite3://~/.marketplace/marketplace-$env.db")
	flag.StringVar(&hstFlag, "host",
		"127.0.0.1", "The externally accessible host name of this marketplace")
	flag.StringVar(&prtFlag, "port",
		"", "The port to listen on, default: 2406 (production) or 2407 (qa)")

	flag.StringVar(&usrFlag, "username",
		"foo", "The user name of the user to upsert")
	flag.StringVar(&pasFlag, "password",
		"bar", "The password of the user to upsert")

	bind.WithFlag()
	if fl := log.Flags(); fl&log.Ltime != 0 {
		log.SetFlags(fl | log.Lmicroseconds)
	}
	graceful.DoubleKickWindow(2 * time.Second)
}

// Serve starts the given mux using reasonable defaults.
func Serve(mux *goji.Mux) {
	ServeListener(mux, bind.Default())
}

// ServeListener is like Serve, but runs `mux` on top of an arbitrary
// net.Listener.
func ServeListener(mux *goji.Mux, listener net.Listener) {
	// Install our handler at the root of the standard net/http default mux.
	// This allows packages like expvar to continue working as expected.
	http.Handle("/", mux)

	log.Println("Starting Goji on", listener.Addr())

	graceful.HandleSignals()
	bind.Ready()
	graceful.PreHook(func() { log.Printf("Goji received signal, gracefully stopping") })
	graceful.PostHook(func() { log.Printf("Goji stopped") })

	err := graceful.Serve(listener, http.DefaultServeMux)

	if err != nil {
		log.Fatal(err)
	}

	graceful.Wait()
}

func main() {
	// A .env file can carry the flags' environment defaults.
	_ = godotenv.Load()

	if !flag.Parsed() {
		flag.Parse()
	}

	ctx, err := app.BackgroundContextFromFlags(
		envFlag, dsnFlag, hstFlag, prtFlag,
	)
	if err != nil {
		log.Fatal(errors.Details(err))
	}

	validActions := []string{"run", "create_user"}
	switch actFlag {
	case "run":
		mux, err := app.Build(ctx)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
		Serve(mux)
	case "create_user":
		createUser(ctx, usrFlag, pasFlag)
	default:
		log.Fatalf("Invalid action `%s`, valid actions are: %s",
			actFlag, strings.Join(validActions, ", "))
	}
}

func createUser(
	ctx context.Context,
	username string,
	password string,
) {
	ctx = livemode.With(ctx, envFlag == "production" || envFlag == "prod")

	user, err := model.LoadUserByUsername(ctx, username)
	if err != nil {
		log.Fatal(err)
	}

	if user != nil {
		logging.Logf(ctx, "Updating user: %s", username)
		err := user.UpdatePassword(ctx, password)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
		err = user.Save(ctx)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
	} else {
		logging.Logf(ctx, "Creating user: %s", username)
		_, err := model.CreateUser(ctx, username, password)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
	}
}
