package config

import "github.com/urfave/cli/v3"

// Slack holds Slack delivery configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
	Channel    string
	Username   string
	IconEmoji  string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL",
			Required:    true,
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("HERALD_SLACK_WEBHOOK_URL", "SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Override the webhook's default channel",
			Destination: &c.Channel,
			Sources:     cli.EnvVars("HERALD_SLACK_CHANNEL"),
		},
		&cli.StringFlag{
			Name:        "slack-username",
			Usage:       "Override the webhook's default username",
			Destination: &c.Username,
			Sources:     cli.EnvVars("HERALD_SLACK_USERNAME"),
		},
		&cli.StringFlag{
			Name:        "slack-icon-emoji",
			Usage:       "Override the webhook's default icon emoji",
			Destination: &c.IconEmoji,
			Sources:     cli.EnvVars("HERALD_SLACK_ICON_EMOJI"),
		},
	}
}
