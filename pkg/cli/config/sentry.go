package config

import (
	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
	sentryinfra "github.com/m-mizutani/gitdbfs/pkg/infra/sentry"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN; errors are not reported when empty",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("GITDBFS_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Destination: &c.Env,
			Sources:     cli.EnvVars("GITDBFS_SENTRY_ENV"),
		},
	}
}

// Configure creates the error reporter
func (c *Sentry) Configure() (interfaces.ErrorReporter, error) {
	if c.DSN == "" {
		return sentryinfra.Nop{}, nil
	}
	return sentryinfra.New(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
	})
}
