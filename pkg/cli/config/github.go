package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/gitdbfs/pkg/infra/github"
)

// GitHub holds GitHub configuration
type GitHub struct {
	WebhookSecret     string `masq:"secret"`
	Repository        string
	Token             string `masq:"secret"`
	AppID             int64
	AppInstallationID int64
	AppPrivateKey     string `masq:"secret"`
	APIURL            string
}

// Flags returns CLI flags for GitHub API access
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "Source repository in owner/name form",
			Required:    true,
			Destination: &c.Repository,
			Sources:     cli.EnvVars("GITDBFS_GITHUB_REPO"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token for the contents API",
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITDBFS_GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID, used instead of a token",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("GITDBFS_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.AppInstallationID,
			Sources:     cli.EnvVars("GITDBFS_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.AppPrivateKey,
			Sources:     cli.EnvVars("GITDBFS_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API base URL for GitHub Enterprise Server",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("GITDBFS_GITHUB_API_URL"),
		},
	}
}

// WebhookFlags returns CLI flags for receiving webhooks
func (c *GitHub) WebhookFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("GITDBFS_GITHUB_WEBHOOK_SECRET"),
		},
	}
}

// Configure creates the source repository client. GitHub App credentials take
// precedence over a token.
func (c *GitHub) Configure() (interfaces.SourceRepository, error) {
	var opts []githubinfra.Option
	if c.APIURL != "" {
		opts = append(opts, githubinfra.WithBaseURL(c.APIURL))
	}

	if c.AppID != 0 {
		if c.AppInstallationID == 0 || c.AppPrivateKey == "" {
			return nil, goerr.New("github-app-installation-id and github-app-private-key are required with github-app-id",
				goerr.V("app_id", c.AppID))
		}
		return githubinfra.NewAppClient(c.Repository, c.AppID, c.AppInstallationID, []byte(c.AppPrivateKey), opts...)
	}

	if c.Token == "" {
		return nil, goerr.New("either github-token or GitHub App credentials are required")
	}
	return githubinfra.NewClient(c.Repository, c.Token, opts...)
}
