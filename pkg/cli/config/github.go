package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub configuration
type GitHub struct {
	Token string `masq:"secret"`
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token (notifications scope)",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("HERALD_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
	}
}
