package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr  string
	Async bool
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("GITDBFS_ADDR"),
		},
		&cli.BoolFlag{
			Name:        "async",
			Usage:       "Acknowledge push webhooks immediately and sync in background",
			Destination: &c.Async,
			Sources:     cli.EnvVars("GITDBFS_ASYNC"),
		},
	}
}
