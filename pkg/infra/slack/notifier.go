package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
	"github.com/m-mizutani/gitdbfs/pkg/domain/model"
)

// failures listed per message; the rest is summarized as a count
const maxListedFailures = 10

type notifier struct {
	client  *slack.Client
	channel string
}

// New creates a JobNotifier posting to a Slack channel with a bot token
func New(token, channel string, opts ...slack.Option) interfaces.JobNotifier {
	return &notifier{
		client:  slack.New(token, opts...),
		channel: channel,
	}
}

// NotifyJob posts a summary of job and its failed files
func (n *notifier) NotifyJob(ctx context.Context, job *model.JobResult) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(summary(job), false),
		slack.MsgOptionBlocks(blocks(job)...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post Slack message",
			goerr.V("channel", n.channel),
			goerr.V("job_id", job.ID),
		)
	}
	return nil
}

func summary(job *model.JobResult) string {
	return fmt.Sprintf("DBFS sync %s for %s@%s: %d uploaded, %d failed",
		job.Outcome, job.Repository, job.Ref, job.UploadedCount(), job.FailedCount())
}

func blocks(job *model.JobResult) []slack.Block {
	header := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, "*"+summary(job)+"*", false, false),
		[]*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, "*Job*\n`"+job.ID+"`", false, false),
			slack.NewTextBlockObject(slack.MarkdownType, "*Branch*\n"+job.Branch, false, false),
		},
		nil,
	)

	var lines []string
	var rest int
	for _, folder := range job.Folders {
		for _, f := range folder.Failed {
			if len(lines) >= maxListedFailures {
				rest++
				continue
			}
			lines = append(lines, fmt.Sprintf("• `%s/%s` %s", folder.Folder, f.Path, f.Kind))
		}
	}
	if len(lines) == 0 {
		return []slack.Block{header}
	}
	if rest > 0 {
		lines = append(lines, fmt.Sprintf("…and %d more", rest))
	}

	failures := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, strings.Join(lines, "\n"), false, false),
		nil, nil,
	)
	return []slack.Block{header, slack.NewDividerBlock(), failures}
}
