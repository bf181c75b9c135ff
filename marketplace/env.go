package marketplace

import (
	"context"

	"github.com/curio/marketplace/lib/env"
)

const (
	// EnvCfgHost is the env config key for the marketplace host.
	EnvCfgHost env.ConfigKey = "host"
	// EnvCfgPort is the env config key for the marketplace port.
	EnvCfgPort env.ConfigKey = "port"
)

// DefaultPort is the default port by environment.
var DefaultPort = map[env.Environment]string{
	env.Production: "2406",
	env.QA:         "2407",
}

// GetHost retrieves the current marketplace host from the given context.
func GetHost(
	ctx context.Context,
) string {
	return env.Get(ctx).Config[EnvCfgHost]
}

// GetPort retrieves the current marketplace port from the given context.
func GetPort(
	ctx context.Context,
) string {
	return env.Get(ctx).Config[EnvCfgPort]
}
