package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

// RunHandler triggers a pipeline run over HTTP
type RunHandler struct {
	pipeline interfaces.ReleasePipeline
}

// NewRunHandler creates a new RunHandler
func NewRunHandler(pipeline interfaces.ReleasePipeline) *RunHandler {
	return &RunHandler{
		pipeline: pipeline,
	}
}

// Handle runs the pipeline synchronously and responds with the run report.
// A malformed request body falls back to default options instead of failing,
// so a bare POST always triggers a default run.
func (h *RunHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	opts := model.DefaultRunOptions()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(body) > 0 {
		if err := json.Unmarshal(body, &opts); err != nil {
			logger.Warn("Failed to parse run request, using defaults", "error", err)
			opts = model.DefaultRunOptions()
		}
	}
	if opts.SinceHours <= 0 {
		opts.SinceHours = model.DefaultSinceHours
	}

	report, err := h.pipeline.Run(ctx, opts)
	if err != nil {
		logger.Error("Pipeline run failed", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.Error("Failed to encode run report", "error", err)
	}
}
