package interfaces

import (
	"context"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

// ReleasePipeline runs one poll, summarize and deliver cycle over the
// notification feed.
type ReleasePipeline interface {
	Run(ctx context.Context, opts model.RunOptions) (*model.RunReport, error)
}
