// Package analysis defines the narrow contract with the external
// multimodal image-analysis collaborator: given raw image bytes and an
// optional filename hint, return a category, a description, and the
// on-image text regions with normalized coordinates.
package analysis

import (
	"context"
	"encoding/json"
	"strings"
)

// TextBlock is one recognized on-image text region. X and Y are
// percentages of the image width/height in [0,100].
type TextBlock struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Result is the collaborator's response for one image.
type Result struct {
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Texts       []TextBlock `json:"texts"`
}

// Analyzer is implemented per provider.
type Analyzer interface {
	Analyze(ctx context.Context, imageData []byte, filename string) (Result, error)
}

// DefaultCategory substitutes for a missing classification.
const DefaultCategory = "Uncategorized"

// Normalize fills defaults for missing or partial fields so callers never
// see an empty category or a nil text list.
func (r Result) Normalize() Result {
	if strings.TrimSpace(r.Category) == "" {
		r.Category = DefaultCategory
	}
	if r.Texts == nil {
		r.Texts = []TextBlock{}
	}
	return r
}

// BuildPrompt is the shared vision prompt. Every provider asks for the
// same JSON shape so ParseResponse can decode any of them.
func BuildPrompt() string {
	return `You are analyzing a personal photo or document image.

Respond with ONLY a JSON object of this exact shape, no other text:
{
  "category": "<one short label, e.g. Photos, Documents, Screenshots, Receipts, Art>",
  "description": "<one or two sentences describing the image>",
  "texts": [
    {"text": "<a piece of text visible in the image>", "x": <0-100>, "y": <0-100>}
  ]
}

Rules:
1. "category" is a single label, not a list
2. "texts" contains each distinct piece of visible text with its position
   as a percentage of the image width (x) and height (y)
3. If no text is visible, "texts" is an empty array
4. Do not wrap the JSON in markdown fences`
}

// ParseResponse decodes a provider's raw reply into a Result, tolerating
// markdown fences and missing fields. An unparseable reply degrades to a
// defaulted Result rather than an error; classification quality is a
// display concern, not a pipeline failure.
func ParseResponse(raw string) Result {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	// Some models prepend prose before the JSON object.
	if i := strings.Index(cleaned, "{"); i > 0 {
		cleaned = cleaned[i:]
	}
	if i := strings.LastIndex(cleaned, "}"); i >= 0 {
		cleaned = cleaned[:i+1]
	}

	var r Result
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return Result{}.Normalize()
	}
	return r.Normalize()
}

// ImageFormat derives a transport format label from the filename
// extension, defaulting to jpeg.
func ImageFormat(filename string) string {
	lowered := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lowered, ".png"):
		return "png"
	case strings.HasSuffix(lowered, ".gif"):
		return "gif"
	case strings.HasSuffix(lowered, ".webp"):
		return "webp"
	default:
		return "jpeg"
	}
}
