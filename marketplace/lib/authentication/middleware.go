package authentication

import (
	"context"
	"net/http"
	"regexp"

	"github.com/curio/marketplace/lib/errors"
	"github.com/curio/marketplace/lib/logging"
	"github.com/curio/marketplace/lib/respond"
	"github.com/curio/marketplace/marketplace/model"
)

// ContextKey is the type of the key used with context to carry contextual
// authentication status.
type ContextKey string

const (
	// statusKey the context.Context key to store the authentication status.
	statusKey ContextKey = "authentication.status"
)

// AutStatus indicates the status of the authentication.
type AutStatus string

const (
	// AutStSucceeded indicates a successful authentication.
	AutStSucceeded AutStatus = "succeeded"
	// AutStSkipped indicates a skipped authentication.
	AutStSkipped AutStatus = "skipped"
	// AutStFailed indicates a failed authentication.
	AutStFailed AutStatus = "failed"
)

// Status stores the authentication information, the status and authenticated
// user if applicable.
type Status struct {
	Status AutStatus
	User   *model.User
}

// With stores the authentication information in a new context.
func With(
	ctx context.Context,
	status Status,
) context.Context {
	return context.WithValue(ctx, statusKey, status)
}

// Get retrieves the authentication information from the context.
func Get(
	ctx context.Context,
) Status {
	return ctx.Value(statusKey).(Status)
}

type middleware struct {
	http.Handler
}

// SkipRule defines a skip rule for authentication.
type SkipRule struct {
	Method  string
	Pattern *regexp.Regexp
}

// SkipList is the list of endpoints that do not require authentication.
var SkipList = []*SkipRule{
	{"GET", regexp.MustCompile("^/pools/[a-zA-Z0-9_]+$")},
	{"GET", regexp.MustCompile("^/pools/[a-zA-Z0-9_]+/nfts/[a-zA-Z0-9_]+/sale$")},
	{"GET", regexp.MustCompile("^/balances/[a-zA-Z0-9_]+/[a-zA-Z0-9_]+$")},
}

// ServeHTTP handles incoming HTTP requests and attempts to authenticate
// them.
func (m middleware) ServeHTTP(
	w http.ResponseWriter,
	r *http.Request,
) {
	ctx := r.Context()
	withStatus := With(ctx, Status{AutStFailed, nil})

	username, password, _ := r.BasicAuth()
	skip := false
	for _, s := range SkipList {
		if s.Method == r.Method && s.Pattern.MatchString(r.URL.Path) {
			skip = true
		}
	}

	// Helper closure to fallback to the skiplist or log and return an
	// authentication error.
	failedAuth := func(err error) {
		if skip {
			withStatus = With(ctx, Status{AutStSkipped, nil})
			logging.Logf(ctx,
				"Authentication: status=%q username=%q",
				Get(withStatus).Status, username)
			m.Handler.ServeHTTP(w, r.WithContext(withStatus))
		} else {
			withStatus = With(ctx, Status{AutStFailed, nil})
			logging.Logf(ctx,
				"Authentication: status=%q username=%q",
				Get(withStatus).Status, username)
			respond.Error(withStatus, w, errors.Trace(err))
		}
	}

	user, err := model.LoadUserByUsername(ctx, username)
	if err != nil {
		failedAuth(errors.Trace(err))
		return
	} else if user == nil {
		failedAuth(errors.Trace(errors.NewUserErrorf(err,
			400, "username_invalid",
			"The username you are trying to authenticate with is not "+
				"associated with any existing user: %s.", username,
		)))
		return
	}

	if err := user.CheckPassword(ctx, password); err != nil {
		failedAuth(errors.Trace(errors.NewUserErrorf(err,
			400, "password_invalid", "The password you provided is invalid.",
		)))
		return
	}

	withStatus = With(ctx, Status{AutStSucceeded, user})
	logging.Logf(ctx,
		"Authentication: status=%q username=%q user=%q",
		Get(withStatus).Status, username, user.Token)

	m.Handler.ServeHTTP(w, r.WithContext(withStatus))
}

// Middleware that attempts to authenticate requests.
func Middleware(h http.Handler) http.Handler {
	return middleware{h}
}
