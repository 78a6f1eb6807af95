package gemini

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/picstash/picstash/internal/analysis"
)

// Gemini analyzes images with Google Gemini vision models.
type Gemini struct{}

// New returns a new Gemini analyzer.
func New() *Gemini {
	return &Gemini{}
}

// Analyze sends the image and the shared prompt to Gemini and decodes the
// JSON reply.
func (g *Gemini) Analyze(ctx context.Context, imageData []byte, filename string) (analysis.Result, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return analysis.Result{}, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return analysis.Result{}, fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	modelName := os.Getenv("GEMINI_MODEL")
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(analysis.ImageFormat(filename), imageData),
		genai.Text(analysis.BuildPrompt()),
	)
	if err != nil {
		return analysis.Result{}, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return analysis.Result{}, fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return analysis.Result{}, fmt.Errorf("empty content returned from Gemini")
	}

	txt, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return analysis.Result{}, fmt.Errorf("unexpected response format from Gemini")
	}

	return analysis.ParseResponse(string(txt)), nil
}
