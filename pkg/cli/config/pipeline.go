package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Pipeline holds orchestration configuration
type Pipeline struct {
	Concurrency int
	RulesPath   string
}

// Flags returns CLI flags for pipeline configuration
func (c *Pipeline) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Maximum number of in-flight summarization calls",
			Value:       10,
			Destination: &c.Concurrency,
			Sources:     cli.EnvVars("HERALD_CONCURRENCY"),
		},
		&cli.StringFlag{
			Name:        "rules",
			Usage:       "Path to a TOML rules file with [repos] include/exclude lists",
			Destination: &c.RulesPath,
			Sources:     cli.EnvVars("HERALD_RULES"),
		},
	}
}

// LoadFilter loads the repository filter from the rules file. It returns a
// nil filter (allow everything) when no rules path is configured.
func (c *Pipeline) LoadFilter() (*model.RepoFilter, error) {
	if c.RulesPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.RulesPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read rules file", goerr.V("path", c.RulesPath))
	}

	var rules struct {
		Repos model.RepoFilter `toml:"repos"`
	}
	if err := toml.Unmarshal(data, &rules); err != nil {
		return nil, goerr.Wrap(err, "failed to parse rules file", goerr.V("path", c.RulesPath))
	}

	if err := rules.Repos.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid rules file", goerr.V("path", c.RulesPath))
	}

	return &rules.Repos, nil
}
