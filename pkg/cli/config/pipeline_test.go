package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/herald/pkg/cli/config"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestPipeline_LoadFilter(t *testing.T) {
	t.Run("no rules path yields nil filter", func(t *testing.T) {
		cfg := &config.Pipeline{}
		filter, err := cfg.LoadFilter()
		gt.NoError(t, err)
		gt.V(t, filter).Nil()
	})

	t.Run("loads include and exclude lists", func(t *testing.T) {
		path := writeRulesFile(t, `
[repos]
include = ["acme/widget", "acme/gadget"]
exclude = ["acme/noisy"]
`)
		cfg := &config.Pipeline{RulesPath: path}

		filter, err := cfg.LoadFilter()
		gt.NoError(t, err)
		gt.V(t, filter).NotNil()
		gt.Equal(t, filter.Include, []string{"acme/widget", "acme/gadget"})
		gt.Equal(t, filter.Exclude, []string{"acme/noisy"})
		gt.Equal(t, filter.Allows("acme/widget"), true)
		gt.Equal(t, filter.Allows("acme/noisy"), false)
		gt.Equal(t, filter.Allows("other/repo"), false)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		cfg := &config.Pipeline{RulesPath: filepath.Join(t.TempDir(), "missing.toml")}
		_, err := cfg.LoadFilter()
		gt.Error(t, err)
	})

	t.Run("invalid TOML is an error", func(t *testing.T) {
		path := writeRulesFile(t, `[repos`)
		cfg := &config.Pipeline{RulesPath: path}
		_, err := cfg.LoadFilter()
		gt.Error(t, err)
	})

	t.Run("entry without owner/name is an error", func(t *testing.T) {
		path := writeRulesFile(t, `
[repos]
include = ["not-a-full-name"]
`)
		cfg := &config.Pipeline{RulesPath: path}
		_, err := cfg.LoadFilter()
		gt.Error(t, err)
	})
}
