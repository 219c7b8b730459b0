package model_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

func TestNewRunReport(t *testing.T) {
	opts := model.RunOptions{SampleMode: true, SinceHours: 48}

	t.Run("empty error list becomes nil", func(t *testing.T) {
		report := model.NewRunReport("done", opts, 10, 3, 3, []string{})
		gt.V(t, report.Errors).Nil()
	})

	t.Run("errors preserved in order", func(t *testing.T) {
		errs := []string{"a/b v1: boom", "c/d v2: delivery failed"}
		report := model.NewRunReport("done", opts, 10, 3, 1, errs)
		gt.Equal(t, report.Errors, errs)
		gt.Equal(t, report.Sent, 1)
		gt.Equal(t, report.SampleMode, true)
		gt.Equal(t, report.SinceHours, 48)
	})
}

func TestRunReport_JSON(t *testing.T) {
	t.Run("errors omitted when empty", func(t *testing.T) {
		report := model.NewRunReport("done", model.RunOptions{SinceHours: 24}, 5, 2, 2, nil)
		out, err := json.Marshal(report)
		gt.NoError(t, err)
		gt.V(t, strings.Contains(string(out), `"errors"`)).Equal(false)
		gt.V(t, strings.Contains(string(out), `"notifications_total":5`)).Equal(true)
		gt.V(t, strings.Contains(string(out), `"release_notifications":2`)).Equal(true)
	})

	t.Run("errors included when present", func(t *testing.T) {
		report := model.NewRunReport("done", model.RunOptions{SinceHours: 24}, 5, 2, 1, []string{"a/b v1: boom"})
		out, err := json.Marshal(report)
		gt.NoError(t, err)
		gt.V(t, strings.Contains(string(out), `"errors":["a/b v1: boom"]`)).Equal(true)
	})
}
