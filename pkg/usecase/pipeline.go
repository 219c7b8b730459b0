package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/utils/async"
)

const defaultConcurrency = 10

type releasePipeline struct {
	source      interfaces.ReleaseSource
	summarizer  interfaces.Summarizer
	notifier    interfaces.Notifier
	concurrency int
	filter      *model.RepoFilter
}

// Option is a functional option for the release pipeline.
type Option func(*releasePipeline)

// WithConcurrency sets the maximum number of in-flight summarization calls.
func WithConcurrency(n int) Option {
	return func(uc *releasePipeline) {
		if n > 0 {
			uc.concurrency = n
		}
	}
}

// WithRepoFilter restricts the pipeline to repositories allowed by the filter.
func WithRepoFilter(filter *model.RepoFilter) Option {
	return func(uc *releasePipeline) {
		uc.filter = filter
	}
}

// NewReleasePipeline creates the poll-summarize-deliver pipeline.
func NewReleasePipeline(
	source interfaces.ReleaseSource,
	summarizer interfaces.Summarizer,
	notifier interfaces.Notifier,
	opts ...Option,
) interfaces.ReleasePipeline {
	uc := &releasePipeline{
		source:      source,
		summarizer:  summarizer,
		notifier:    notifier,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run executes one pipeline invocation. Per-item failures are downgraded to
// strings in the report; only failures before the per-item stages (here, the
// notification list fetch) abort the run.
func (uc *releasePipeline) Run(ctx context.Context, opts model.RunOptions) (*model.RunReport, error) {
	logger := ctxlog.From(ctx).With("run_id", uuid.NewString())
	ctx = ctxlog.With(ctx, logger)

	if opts.SinceHours <= 0 {
		opts.SinceHours = model.DefaultSinceHours
	}
	since := time.Now().UTC().Add(-time.Duration(opts.SinceHours) * time.Hour)

	logger.Info("Fetching notifications",
		"since", since,
		"sample_mode", opts.SampleMode,
	)

	notifications, err := uc.source.ListNotifications(ctx, since)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notifications", goerr.V("since", since))
	}

	pairs := uc.source.FilterReleasePairs(ctx, notifications)

	records := make([]model.ReleaseRecord, 0, len(pairs))
	for _, pair := range pairs {
		record := model.NewReleaseRecord(pair)
		if !uc.filter.Allows(record.RepositoryName) {
			logger.Debug("Repository filtered out", "repository", record.RepositoryName)
			continue
		}
		records = append(records, record)
	}

	logger.Info("Filtered release notifications",
		"notifications_total", len(notifications),
		"release_notifications", len(records),
	)

	if len(records) == 0 {
		return model.NewRunReport("No release notifications found", opts, len(notifications), 0, 0, nil), nil
	}

	if opts.SampleMode {
		records = records[:1]
		logger.Info("Sample mode: limiting to 1 release")
	} else {
		// The notification feed returns newest-first; deliver oldest-first.
		slices.Reverse(records)
	}

	outcomes := uc.summarizeAll(ctx, records)
	sent, errs := uc.deliverAll(ctx, outcomes)

	logger.Info("Run completed",
		"sent", sent,
		"failed", len(errs),
	)

	return model.NewRunReport("GitHub release notifications processed", opts, len(notifications), len(records), sent, errs), nil
}

// summarizeAll summarizes records with bounded parallelism. It returns exactly
// one outcome per record, positionally matching the input, and only after
// every unit has finished. A unit's failure is captured into its outcome and
// never cancels siblings.
func (uc *releasePipeline) summarizeAll(ctx context.Context, records []model.ReleaseRecord) []model.SummarizationOutcome {
	logger := ctxlog.From(ctx)
	logger.Info("Starting parallel summarization",
		"releases", len(records),
		"concurrency", uc.concurrency,
	)

	results := async.Map(ctx, records, uc.concurrency, func(ctx context.Context, record model.ReleaseRecord) (string, error) {
		return uc.summarizer.Summarize(ctx, record.RepositoryName, record.TagName, record.ReleaseBody)
	})

	outcomes := make([]model.SummarizationOutcome, len(records))
	for i, result := range results {
		if result.Err != nil {
			outcomes[i] = model.SummarizationOutcome{
				Record: records[i],
				Err:    fmt.Sprintf("%s %s: %v", records[i].RepositoryName, records[i].TagName, result.Err),
			}
			logger.Error("Summarization failed",
				"repository", records[i].RepositoryName,
				"tag", records[i].TagName,
				"error", result.Err,
			)
			continue
		}

		outcomes[i] = model.SummarizationOutcome{
			Record:  records[i],
			Summary: result.Value,
		}
		logger.Info("Summarization completed",
			"repository", records[i].RepositoryName,
			"tag", records[i].TagName,
			"summary_chars", len(result.Value),
		)
	}

	return outcomes
}

// deliverAll walks outcomes strictly in order and delivers each non-errored
// entry one at a time. Failures are accumulated, never aborting the walk.
func (uc *releasePipeline) deliverAll(ctx context.Context, outcomes []model.SummarizationOutcome) (int, []string) {
	logger := ctxlog.From(ctx)

	var sent int
	var errs []string

	for i, outcome := range outcomes {
		record := outcome.Record
		logger.Info("Delivering release summary",
			"index", i+1,
			"total", len(outcomes),
			"repository", record.RepositoryName,
			"tag", record.TagName,
		)

		if outcome.Failed() {
			errs = append(errs, outcome.Err)
			continue
		}

		accepted, err := uc.notifier.NotifyRelease(ctx, record, outcome.Summary)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("%s %s: delivery error: %v", record.RepositoryName, record.TagName, err))
			logger.Error("Delivery error",
				"repository", record.RepositoryName,
				"tag", record.TagName,
				"error", err,
			)
		case !accepted:
			errs = append(errs, fmt.Sprintf("%s %s: delivery failed", record.RepositoryName, record.TagName))
			logger.Error("Delivery not accepted",
				"repository", record.RepositoryName,
				"tag", record.TagName,
			)
		default:
			sent++
		}
	}

	return sent, errs
}
