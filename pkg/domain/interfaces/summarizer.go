package interfaces

import "context"

// Summarizer produces a short summary of a release note. Calls are
// long-running (network and model latency) and must honor ctx.
type Summarizer interface {
	Summarize(ctx context.Context, repository, version, releaseNote string) (string, error)
}
