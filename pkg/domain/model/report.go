package model

// DefaultSinceHours is the default lookback window for the notification feed.
const DefaultSinceHours = 24

// RunOptions controls a single pipeline invocation.
type RunOptions struct {
	// SampleMode restricts the run to the first release notification, for
	// validating the pipeline end-to-end without full-volume delivery.
	SampleMode bool `json:"sample_mode"`

	// SinceHours is how far back to look in the notification feed.
	SinceHours int `json:"since_hours"`
}

// DefaultRunOptions returns the options used when a trigger carries none.
func DefaultRunOptions() RunOptions {
	return RunOptions{SinceHours: DefaultSinceHours}
}

// RunReport is the terminal aggregate of one pipeline invocation.
type RunReport struct {
	Message              string   `json:"message"`
	SampleMode           bool     `json:"sample_mode"`
	SinceHours           int      `json:"since_hours"`
	NotificationsTotal   int      `json:"notifications_total"`
	ReleaseNotifications int      `json:"release_notifications"`
	Sent                 int      `json:"sent"`
	Errors               []string `json:"errors,omitempty"`
}

// NewRunReport builds a RunReport. An empty error list is normalized to nil
// so it is omitted from the JSON representation.
func NewRunReport(message string, opts RunOptions, notificationsTotal, releaseNotifications, sent int, errs []string) *RunReport {
	if len(errs) == 0 {
		errs = nil
	}

	return &RunReport{
		Message:              message,
		SampleMode:           opts.SampleMode,
		SinceHours:           opts.SinceHours,
		NotificationsTotal:   notificationsTotal,
		ReleaseNotifications: releaseNotifications,
		Sent:                 sent,
		Errors:               errs,
	}
}
