package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

func TestRepoFilter_Allows(t *testing.T) {
	tests := []struct {
		name     string
		filter   *model.RepoFilter
		fullName string
		want     bool
	}{
		{
			name:     "nil filter allows everything",
			filter:   nil,
			fullName: "acme/widget",
			want:     true,
		},
		{
			name:     "empty filter allows everything",
			filter:   &model.RepoFilter{},
			fullName: "acme/widget",
			want:     true,
		},
		{
			name:     "include hit",
			filter:   &model.RepoFilter{Include: []string{"acme/widget"}},
			fullName: "acme/widget",
			want:     true,
		},
		{
			name:     "include miss",
			filter:   &model.RepoFilter{Include: []string{"acme/widget"}},
			fullName: "acme/other",
			want:     false,
		},
		{
			name:     "exclude hit",
			filter:   &model.RepoFilter{Exclude: []string{"acme/widget"}},
			fullName: "acme/widget",
			want:     false,
		},
		{
			name:     "exclude wins over include",
			filter:   &model.RepoFilter{Include: []string{"acme/widget"}, Exclude: []string{"acme/widget"}},
			fullName: "acme/widget",
			want:     false,
		},
		{
			name:     "matching is case-insensitive",
			filter:   &model.RepoFilter{Include: []string{"Acme/Widget"}},
			fullName: "acme/widget",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, tt.filter.Allows(tt.fullName), tt.want)
		})
	}
}

func TestRepoFilter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		filter  *model.RepoFilter
		wantErr bool
	}{
		{
			name:   "valid entries",
			filter: &model.RepoFilter{Include: []string{"acme/widget"}, Exclude: []string{"acme/other"}},
		},
		{
			name:    "missing slash",
			filter:  &model.RepoFilter{Include: []string{"acme"}},
			wantErr: true,
		},
		{
			name:    "empty owner",
			filter:  &model.RepoFilter{Exclude: []string{"/widget"}},
			wantErr: true,
		},
		{
			name:    "empty name",
			filter:  &model.RepoFilter{Include: []string{"acme/"}},
			wantErr: true,
		},
		{
			name:   "nil filter",
			filter: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}
