package cli

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/m-mizutani/herald/pkg/cli/config"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	githubinfra "github.com/m-mizutani/herald/pkg/infra/github"
	"github.com/m-mizutani/herald/pkg/infra/llm"
	slackinfra "github.com/m-mizutani/herald/pkg/infra/slack"
	"github.com/m-mizutani/herald/pkg/usecase"
)

const defaultOpenAIModel = "gpt-5-mini"

// buildOptions controls how buildPipeline wires the collaborators.
type buildOptions struct {
	dryRun        bool
	sentryEnabled bool
}

// buildPipeline wires the infra clients and the pipeline from CLI configs.
func buildPipeline(
	ctx context.Context,
	githubCfg *config.GitHub,
	llmCfg *config.LLM,
	slackCfg *config.Slack,
	pipelineCfg *config.Pipeline,
	opt buildOptions,
) (interfaces.ReleasePipeline, error) {
	source, err := githubinfra.NewClient(githubCfg.Token)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub client")
	}

	llmClient, err := newLLMClient(ctx, llmCfg)
	if err != nil {
		return nil, err
	}
	summarizer, err := llm.NewSummarizer(llmClient)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create summarizer")
	}

	notifier, err := newNotifier(slackCfg, opt.dryRun)
	if err != nil {
		return nil, err
	}

	filter, err := pipelineCfg.LoadFilter()
	if err != nil {
		return nil, err
	}

	pipeline := usecase.NewReleasePipeline(source, summarizer, notifier,
		usecase.WithConcurrency(pipelineCfg.Concurrency),
		usecase.WithRepoFilter(filter),
	)

	if opt.sentryEnabled {
		pipeline = &reportingPipeline{ReleasePipeline: pipeline}
	}

	return pipeline, nil
}

func newLLMClient(ctx context.Context, cfg *config.LLM) (gollem.LLMClient, error) {
	switch cfg.Provider {
	case "", "openai":
		if cfg.APIKey == "" {
			return nil, goerr.New("llm-api-key is required for the openai provider")
		}
		model := cfg.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		return openai.New(ctx, cfg.APIKey, openai.WithModel(model))

	case "gemini":
		if cfg.GeminiProjectID == "" {
			return nil, goerr.New("gemini-project-id is required for the gemini provider")
		}
		var opts []gemini.Option
		if cfg.Model != "" {
			opts = append(opts, gemini.WithModel(cfg.Model))
		}
		return gemini.New(ctx, cfg.GeminiProjectID, cfg.GeminiLocation, opts...)

	case "claude":
		if cfg.APIKey == "" {
			return nil, goerr.New("llm-api-key is required for the claude provider")
		}
		var opts []claude.Option
		if cfg.Model != "" {
			opts = append(opts, claude.WithModel(cfg.Model))
		}
		return claude.New(ctx, cfg.APIKey, opts...)

	default:
		return nil, goerr.New("unknown LLM provider", goerr.V("provider", cfg.Provider))
	}
}

func newNotifier(cfg *config.Slack, dryRun bool) (interfaces.Notifier, error) {
	if dryRun {
		return &dryRunNotifier{}, nil
	}

	var opts []slackinfra.Option
	if cfg.Channel != "" {
		opts = append(opts, slackinfra.WithChannel(cfg.Channel))
	}
	if cfg.Username != "" {
		opts = append(opts, slackinfra.WithUsername(cfg.Username))
	}
	if cfg.IconEmoji != "" {
		opts = append(opts, slackinfra.WithIconEmoji(cfg.IconEmoji))
	}

	notifier, err := slackinfra.NewNotifier(cfg.WebhookURL, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Slack notifier")
	}
	return notifier, nil
}

// dryRunNotifier logs summaries instead of posting them. Every message counts
// as accepted.
type dryRunNotifier struct{}

func (n *dryRunNotifier) NotifyRelease(ctx context.Context, record model.ReleaseRecord, summary string) (bool, error) {
	ctxlog.From(ctx).Info("Dry run: skipping Slack delivery",
		"repository", record.RepositoryName,
		"tag", record.TagName,
		"summary", summary,
	)
	return true, nil
}

func (n *dryRunNotifier) NotifyTest(ctx context.Context) (bool, error) {
	ctxlog.From(ctx).Info("Dry run: skipping Slack test message")
	return true, nil
}

// reportingPipeline forwards fatal pipeline errors to Sentry.
type reportingPipeline struct {
	interfaces.ReleasePipeline
}

func (p *reportingPipeline) Run(ctx context.Context, opts model.RunOptions) (*model.RunReport, error) {
	report, err := p.ReleasePipeline.Run(ctx, opts)
	if err != nil {
		sentry.CaptureException(err)
	}
	return report, err
}
