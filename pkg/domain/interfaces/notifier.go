package interfaces

import (
	"context"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

// Notifier delivers release summaries to a chat channel.
type Notifier interface {
	// NotifyRelease posts a summarized release. The bool reports whether the
	// channel accepted the message.
	NotifyRelease(ctx context.Context, record model.ReleaseRecord, summary string) (bool, error)

	// NotifyTest posts a plain connectivity check message.
	NotifyTest(ctx context.Context) (bool, error)
}
