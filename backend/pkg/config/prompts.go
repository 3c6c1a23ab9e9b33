package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	apperrors "travelmind/backend/pkg/errors"
)

//go:embed prompts.toml
var embeddedPrompts []byte

// PromptTemplate is a single text/template source
type PromptTemplate struct {
	Template string `toml:"template"`
}

// Prompts holds the two fixed model prompts
type Prompts struct {
	Extraction     PromptTemplate `toml:"extraction"`
	Recommendation PromptTemplate `toml:"recommendation"`
}

// LoadPrompts returns the embedded prompts, with any non-empty template from
// path layered on top. An empty path yields the embedded defaults.
func LoadPrompts(path string) (*Prompts, error) {
	var prompts Prompts
	if err := toml.Unmarshal(embeddedPrompts, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse embedded prompts: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompts file '%s': %w", path, err)
		}

		var override Prompts
		if err := toml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to parse prompts file '%s': %w", path, err)
		}
		if strings.TrimSpace(override.Extraction.Template) != "" {
			prompts.Extraction = override.Extraction
		}
		if strings.TrimSpace(override.Recommendation.Template) != "" {
			prompts.Recommendation = override.Recommendation
		}
	}

	if strings.TrimSpace(prompts.Extraction.Template) == "" {
		return nil, apperrors.NewConfigMissingRequired("extraction.template")
	}
	if strings.TrimSpace(prompts.Recommendation.Template) == "" {
		return nil, apperrors.NewConfigMissingRequired("recommendation.template")
	}

	return &prompts, nil
}
