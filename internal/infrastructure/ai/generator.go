// Package ai calls the summary generation backend. The backend is a plain
// HTTP service; a failed or slow call degrades to "no summary" and never
// affects the report itself.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	sharedConfig "github.com/chroma-excellence/chromaqa/internal/shared/config"
)

type HTTPSummaryGenerator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPSummaryGenerator(cfg *sharedConfig.AIConfig) *HTTPSummaryGenerator {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPSummaryGenerator{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Summary string `json:"summary"`
}

func (g *HTTPSummaryGenerator) Generate(ctx context.Context, r *report.Report, template *checklist.Template) (string, error) {
	if g.endpoint == "" {
		return "", fmt.Errorf("summary backend is not configured")
	}

	payload, err := json.Marshal(generateRequest{Prompt: buildPrompt(r, template)})
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build summary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read summary response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summary backend returned status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal summary response: %w", err)
	}
	if result.Summary == "" {
		return "", fmt.Errorf("summary backend returned empty content")
	}

	return result.Summary, nil
}

// buildPrompt flattens the report's ratings and notes into the text the
// backend summarizes.
func buildPrompt(r *report.Report, template *checklist.Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize this %s school inspection report.\n", r.ReportType())
	fmt.Fprintf(&b, "Inspection date: %s\n\n", r.InspectionDate().Format("2006-01-02"))

	responses := r.Responses()
	for _, section := range template.Sections {
		fmt.Fprintf(&b, "## %s\n", section.Title)
		for _, item := range section.Items {
			resp, ok := responses[item.Key]
			if !ok || resp.Rating == "" {
				fmt.Fprintf(&b, "- %s: not assessed\n", item.Prompt)
				continue
			}
			fmt.Fprintf(&b, "- %s: %s", item.Prompt, resp.Rating)
			if resp.Notes != "" {
				fmt.Fprintf(&b, " (%s)", resp.Notes)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if notes := r.ClosingNotes(); notes != "" {
		fmt.Fprintf(&b, "Inspector closing notes: %s\n", notes)
	}

	return b.String()
}
