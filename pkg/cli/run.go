package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/cli/config"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdRun() *cli.Command {
	var (
		githubCfg   config.GitHub
		llmCfg      config.LLM
		slackCfg    config.Slack
		pipelineCfg config.Pipeline
		sentryCfg   config.Sentry

		sampleMode bool
		sinceHours int
		dryRun     bool
	)

	flags := append(githubCfg.Flags(), llmCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, pipelineCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:        "sample",
			Usage:       "Process only the first release notification",
			Destination: &sampleMode,
			Sources:     cli.EnvVars("HERALD_SAMPLE"),
		},
		&cli.IntFlag{
			Name:        "since-hours",
			Usage:       "How far back to look in the notification feed",
			Value:       model.DefaultSinceHours,
			Destination: &sinceHours,
			Sources:     cli.EnvVars("HERALD_SINCE_HOURS"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Summarize but log instead of posting to Slack",
			Destination: &dryRun,
			Sources:     cli.EnvVars("HERALD_DRY_RUN"),
		},
	)

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Run the release summary pipeline once",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			sentryEnabled, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			if sentryEnabled {
				defer sentry.Flush(2 * time.Second)
			}

			logger.Info("Starting herald run",
				"sample_mode", sampleMode,
				"since_hours", sinceHours,
				"dry_run", dryRun,
				"config", map[string]any{
					"github":   githubCfg,
					"llm":      llmCfg,
					"slack":    slackCfg,
					"pipeline": pipelineCfg,
				},
			)

			pipeline, err := buildPipeline(ctx, &githubCfg, &llmCfg, &slackCfg, &pipelineCfg, buildOptions{
				dryRun:        dryRun,
				sentryEnabled: sentryEnabled,
			})
			if err != nil {
				return err
			}

			report, err := pipeline.Run(ctx, model.RunOptions{
				SampleMode: sampleMode,
				SinceHours: sinceHours,
			})
			if err != nil {
				return goerr.Wrap(err, "pipeline run failed")
			}

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to encode run report")
			}
			fmt.Fprintln(os.Stdout, string(out))

			logger.Info("Run finished",
				"sent", report.Sent,
				"release_notifications", report.ReleaseNotifications,
				"errors", len(report.Errors),
			)
			return nil
		},
	}
}
