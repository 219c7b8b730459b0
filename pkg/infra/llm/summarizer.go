package llm

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
)

//go:embed prompts/release_summary_system.md
var systemPrompt string

//go:embed prompts/release_summary_user.md
var userPromptTemplate string

// maxReleaseNoteChars caps the release note text sent to the model. Release
// notes with exhaustive changelogs easily exceed useful prompt sizes.
const maxReleaseNoteChars = 8192

type summarizer struct {
	llmClient    gollem.LLMClient
	userTemplate *template.Template
}

// NewSummarizer creates a release note summarizer backed by the given LLM client.
func NewSummarizer(llmClient gollem.LLMClient) (interfaces.Summarizer, error) {
	tmpl, err := template.New("user").Parse(userPromptTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse user prompt template")
	}

	return &summarizer{
		llmClient:    llmClient,
		userTemplate: tmpl,
	}, nil
}

// Summarize generates a short summary of the release note.
func (s *summarizer) Summarize(ctx context.Context, repository, version, releaseNote string) (string, error) {
	logger := ctxlog.From(ctx)

	if len(releaseNote) > maxReleaseNoteChars {
		releaseNote = releaseNote[:maxReleaseNoteChars] + "\n...(truncated)"
	}

	var buf bytes.Buffer
	if err := s.userTemplate.Execute(&buf, map[string]string{
		"Repository":  repository,
		"Version":     version,
		"ReleaseNote": releaseNote,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute user prompt template")
	}

	logger.Debug("Calling LLM for release summary",
		"repository", repository,
		"version", version,
		"prompt_length", buf.Len(),
	)

	session, err := s.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buf.String()))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate summary")
	}

	if resp == nil || len(resp.Texts) == 0 || strings.TrimSpace(resp.Texts[0]) == "" {
		return "", goerr.New("empty response from LLM", goerr.V("repository", repository), goerr.V("version", version))
	}

	return strings.TrimSpace(resp.Texts[0]), nil
}
