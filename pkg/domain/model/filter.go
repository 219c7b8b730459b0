package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// RepoFilter restricts which repositories are summarized and delivered.
// Entries are owner/name full names, matched case-insensitively. An empty
// include list allows every repository; exclude wins over include.
type RepoFilter struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// Allows reports whether the repository passes the filter. A nil filter
// allows everything.
func (f *RepoFilter) Allows(fullName string) bool {
	if f == nil {
		return true
	}
	if f.excluded(fullName) {
		return false
	}
	return f.included(fullName)
}

func (f *RepoFilter) excluded(fullName string) bool {
	if f == nil {
		return false
	}
	for _, name := range f.Exclude {
		if strings.EqualFold(name, fullName) {
			return true
		}
	}
	return false
}

func (f *RepoFilter) included(fullName string) bool {
	if f == nil || len(f.Include) == 0 {
		return true
	}
	for _, name := range f.Include {
		if strings.EqualFold(name, fullName) {
			return true
		}
	}
	return false
}

// Validate checks that every entry is an owner/name full name.
func (f *RepoFilter) Validate() error {
	if f == nil {
		return nil
	}
	for _, list := range [][]string{f.Include, f.Exclude} {
		for _, name := range list {
			owner, repo, ok := strings.Cut(name, "/")
			if !ok || owner == "" || repo == "" {
				return goerr.New("repository filter entry must be owner/name", goerr.V("entry", name))
			}
		}
	}
	return nil
}
