package config

import (
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
	slackinfra "github.com/m-mizutani/gitdbfs/pkg/infra/slack"
)

// Slack holds job notification configuration
type Slack struct {
	Token   string `masq:"secret"`
	Channel string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token for job failure notifications",
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITDBFS_SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel receiving job failure notifications",
			Destination: &c.Channel,
			Sources:     cli.EnvVars("GITDBFS_SLACK_CHANNEL"),
		},
	}
}

// Configure creates the job notifier, or nil when Slack is not configured
func (c *Slack) Configure() interfaces.JobNotifier {
	if c.Token == "" || c.Channel == "" {
		return nil
	}
	return slackinfra.New(c.Token, c.Channel)
}
