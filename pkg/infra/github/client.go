package github

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

const notificationsPerPage = 100

type client struct {
	githubClient *github.Client
}

// config holds internal client configuration
type config struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*config)

// WithBaseURL points the client at a non-default API endpoint (GHE, tests)
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		c.httpClient = httpClient
	}
}

// NewClient creates a notification feed client authenticated with a personal
// access token. The notifications endpoint is user-scoped, so a PAT is the
// only supported credential.
func NewClient(token string, opts ...Option) (interfaces.ReleaseSource, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	githubClient := github.NewClient(cfg.httpClient)
	if token != "" {
		githubClient = githubClient.WithAuthToken(token)
	}

	if cfg.baseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(cfg.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid base URL", goerr.V("base_url", cfg.baseURL))
		}
		githubClient.BaseURL = baseURL
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// ListNotifications pages through the user's notification feed, returning all
// notifications updated since the given time.
func (c *client) ListNotifications(ctx context.Context, since time.Time) ([]*github.Notification, error) {
	opts := &github.NotificationListOptions{
		All:   true,
		Since: since,
		ListOptions: github.ListOptions{
			PerPage: notificationsPerPage,
		},
	}

	var all []*github.Notification
	for {
		notifications, resp, err := c.githubClient.Activity.ListNotifications(ctx, opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list notifications", goerr.V("since", since))
		}

		all = append(all, notifications...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// FilterReleasePairs keeps notifications whose subject is a release and
// fetches the release details for each. A pair whose subject URL cannot be
// parsed or whose detail fetch fails is dropped silently.
func (c *client) FilterReleasePairs(ctx context.Context, notifications []*github.Notification) []model.ReleasePair {
	logger := ctxlog.From(ctx)

	var pairs []model.ReleasePair
	for _, notification := range notifications {
		if notification.GetSubject().GetType() != "Release" {
			continue
		}

		subjectURL := notification.GetSubject().GetURL()
		owner, repo, releaseID, err := parseReleaseURL(subjectURL)
		if err != nil {
			logger.Debug("Skipping release notification with unparseable subject URL",
				"url", subjectURL,
				"error", err,
			)
			continue
		}

		release, _, err := c.githubClient.Repositories.GetRelease(ctx, owner, repo, releaseID)
		if err != nil {
			logger.Debug("Skipping release notification: failed to fetch release details",
				"repository", owner+"/"+repo,
				"release_id", releaseID,
				"error", err,
			)
			continue
		}

		pairs = append(pairs, model.ReleasePair{
			Notification: notification,
			Release:      release,
		})
	}

	return pairs
}

// parseReleaseURL extracts owner, repo and release ID from a subject URL like
// https://api.github.com/repos/{owner}/{repo}/releases/{id}.
func parseReleaseURL(raw string) (string, string, int64, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", 0, goerr.Wrap(err, "invalid subject URL", goerr.V("url", raw))
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	// GHE subject URLs carry an /api/v3 prefix
	if idx := slices.Index(parts, "repos"); idx > 0 {
		parts = parts[idx:]
	}

	if len(parts) != 5 || parts[0] != "repos" || parts[3] != "releases" {
		return "", "", 0, goerr.New("unexpected subject URL format", goerr.V("url", raw))
	}

	releaseID, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return "", "", 0, goerr.Wrap(err, "invalid release ID in subject URL", goerr.V("url", raw))
	}

	return parts[1], parts[2], releaseID, nil
}
