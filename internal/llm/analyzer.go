// Package llm derives color tags for product images with Gemini via Genkit.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"go.uber.org/zap"

	"github.com/sneakerfitai/sneakerfitai/internal/config"
	"github.com/sneakerfitai/sneakerfitai/pkg/dataurl"
)

const maxColorTags = 5

const colorTagPrompt = `You are labeling a product photo for a sneaker catalog.
Identify the 3 to 5 dominant colors of the product shown.
Respond with ONLY a strict JSON array of lowercase color names, for example:
["black","red","gum"]
No prose, no markdown.`

// Analyzer turns a product image into a small set of color tags. Every
// implementation is best-effort: callers treat any error as "no tags".
type Analyzer interface {
	ColorTags(ctx context.Context, imageSrc string) ([]string, error)
}

type genkitAnalyzer struct {
	genkit *genkit.Genkit
	model  string
	log    *zap.Logger
}

// NewAnalyzer builds the Gemini-backed analyzer, or a disabled one when no
// API key is configured.
func NewAnalyzer(cfg *config.Config, log *zap.Logger) Analyzer {
	if cfg.LLM.GoogleAIAPIKey == "" {
		log.Info("color tagging disabled: no Google AI API key configured")
		return disabled{}
	}

	googleAI := &googlegenai.GoogleAI{
		APIKey: cfg.LLM.GoogleAIAPIKey,
	}
	g := genkit.Init(context.Background(), genkit.WithPlugins(googleAI))

	return &genkitAnalyzer{
		genkit: g,
		model:  cfg.LLM.Model,
		log:    log,
	}
}

func (a *genkitAnalyzer) ColorTags(ctx context.Context, imageSrc string) ([]string, error) {
	mimeType, _, err := dataurl.Decode(imageSrc)
	if err != nil {
		return nil, fmt.Errorf("image is not an inline data URL: %w", err)
	}

	response, err := genkit.Generate(ctx, a.genkit,
		ai.WithModelName(a.model),
		ai.WithMessages(ai.NewMessage(ai.RoleUser, nil,
			ai.NewTextPart(colorTagPrompt),
			ai.NewMediaPart(mimeType, imageSrc),
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate color tags: %w", err)
	}

	tags, err := parseColorTags(response.Text())
	if err != nil {
		return nil, err
	}

	a.log.Debug("color tags derived", zap.Strings("tags", tags))
	return tags, nil
}

// parseColorTags extracts a JSON string array from model output, tolerating
// a markdown code fence around the payload.
func parseColorTags(text string) ([]string, error) {
	var tags []string
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &tags); err != nil {
		return nil, fmt.Errorf("model returned a malformed tag list: %w", err)
	}

	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
		if len(out) == maxColorTags {
			break
		}
	}
	if len(out) == 0 {
		return nil, errors.New("model returned no usable tags")
	}
	return out, nil
}

// stripCodeFence removes a wrapping markdown code block, with or without a
// language tag on the opening fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// disabled is the analyzer used when tagging is not configured: products
// are created without color tags.
type disabled struct{}

func (disabled) ColorTags(context.Context, string) ([]string, error) {
	return nil, nil
}
