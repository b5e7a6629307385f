package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
	"github.com/m-mizutani/gitdbfs/pkg/infra/dbfs"
)

// DBFS holds Databricks File System configuration
type DBFS struct {
	Host     string
	Token    string `masq:"secret"`
	BasePath string
	Prune    bool
}

// Flags returns CLI flags for DBFS configuration
func (c *DBFS) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dbfs-host",
			Usage:       "Databricks workspace URL",
			Required:    true,
			Destination: &c.Host,
			Sources:     cli.EnvVars("GITDBFS_DBFS_HOST", "DATABRICKS_HOST"),
		},
		&cli.StringFlag{
			Name:        "dbfs-token",
			Usage:       "Databricks personal access token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITDBFS_DBFS_TOKEN", "DATABRICKS_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "dbfs-base-path",
			Usage:       "DBFS directory version folders are published under, e.g. dbfs:/mnt/models",
			Required:    true,
			Destination: &c.BasePath,
			Sources:     cli.EnvVars("GITDBFS_DBFS_BASE_PATH"),
		},
		&cli.BoolFlag{
			Name:        "dbfs-prune",
			Usage:       "Delete DBFS files that no longer exist in the version folder",
			Destination: &c.Prune,
			Sources:     cli.EnvVars("GITDBFS_DBFS_PRUNE"),
		},
	}
}

// Configure creates the DBFS target store client
func (c *DBFS) Configure() (interfaces.TargetStore, error) {
	if dbfs.NormalizePath(c.BasePath) == "/" {
		return nil, goerr.New("dbfs-base-path must not be the DBFS root", goerr.V("path", c.BasePath))
	}
	return dbfs.NewClient(c.Host, c.Token)
}
