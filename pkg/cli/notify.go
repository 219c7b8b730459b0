package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdNotifyTest() *cli.Command {
	var slackCfg config.Slack

	return &cli.Command{
		Name:  "notify-test",
		Usage: "Send a test message to the configured Slack webhook",
		Flags: slackCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			notifier, err := newNotifier(&slackCfg, false)
			if err != nil {
				return err
			}

			accepted, err := notifier.NotifyTest(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to send test notification")
			}
			if !accepted {
				return goerr.New("test notification was not accepted")
			}

			ctxlog.From(ctx).Info("Test notification sent")
			return nil
		},
	}
}
