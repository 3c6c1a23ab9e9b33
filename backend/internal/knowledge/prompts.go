package knowledge

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"travelmind/backend/internal/graph"
	"travelmind/backend/pkg/config"
)

var promptFuncs = template.FuncMap{
	"join": func(items []string) string {
		return strings.Join(items, ", ")
	},
	"days": func(avg *float64) string {
		if avg == nil {
			return "unknown"
		}
		return strconv.FormatFloat(*avg, 'f', 1, 64)
	},
}

// Prompts holds the compiled extraction and recommendation templates
type Prompts struct {
	extraction     *template.Template
	recommendation *template.Template
}

type extractionData struct {
	Transcript string
}

type recommendationData struct {
	Context     *graph.TravelContext
	Destination string
	Stats       *graph.DestinationStats
}

// NewPrompts compiles the configured prompt templates
func NewPrompts(cfg *config.Prompts) (*Prompts, error) {
	extraction, err := template.New("extraction").Funcs(promptFuncs).Parse(cfg.Extraction.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extraction template: %w", err)
	}
	recommendation, err := template.New("recommendation").Funcs(promptFuncs).Parse(cfg.Recommendation.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recommendation template: %w", err)
	}

	return &Prompts{
		extraction:     extraction,
		recommendation: recommendation,
	}, nil
}

// Extraction renders the extraction prompt for a transcript
func (p *Prompts) Extraction(transcript string) (string, error) {
	return render(p.extraction, extractionData{Transcript: transcript})
}

// Recommendation renders the recommendation prompt. The destination section
// is left out when stats is nil.
func (p *Prompts) Recommendation(tc *graph.TravelContext, destination string, stats *graph.DestinationStats) (string, error) {
	return render(p.recommendation, recommendationData{
		Context:     tc,
		Destination: destination,
		Stats:       stats,
	})
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
