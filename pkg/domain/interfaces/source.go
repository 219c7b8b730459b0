package interfaces

import (
	"context"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

// ReleaseSource provides the user's notification feed and release details.
type ReleaseSource interface {
	// ListNotifications returns all notifications updated since the given
	// time. A failure here is fatal for the run.
	ListNotifications(ctx context.Context, since time.Time) ([]*github.Notification, error)

	// FilterReleasePairs keeps release notifications and attaches their
	// release details. Pairs whose detail fetch fails are dropped silently;
	// the method itself never fails.
	FilterReleasePairs(ctx context.Context, notifications []*github.Notification) []model.ReleasePair
}
