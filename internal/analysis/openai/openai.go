package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/picstash/picstash/internal/analysis"
)

// OpenAI analyzes images with the OpenAI chat completions vision API.
type OpenAI struct{}

// New returns a new OpenAI analyzer.
func New() *OpenAI {
	return &OpenAI{}
}

// Analyze sends the image as a data URL alongside the shared prompt and
// decodes the JSON reply.
func (o *OpenAI) Analyze(ctx context.Context, imageData []byte, filename string) (analysis.Result, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return analysis.Result{}, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o"
	}

	dataURL := fmt.Sprintf("data:image/%s;base64,%s",
		analysis.ImageFormat(filename),
		base64.StdEncoding.EncodeToString(imageData))

	requestBody, err := json.Marshal(map[string]interface{}{
		"model": model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": analysis.BuildPrompt(),
					},
					{
						"type": "image_url",
						"image_url": map[string]string{
							"url": dataURL,
						},
					},
				},
			},
		},
		"max_tokens":  2000,
		"temperature": 0.1,
	})
	if err != nil {
		return analysis.Result{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(requestBody))
	if err != nil {
		return analysis.Result{}, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return analysis.Result{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return analysis.Result{}, fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return analysis.Result{}, fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Choices) == 0 {
		return analysis.Result{}, fmt.Errorf("no choices returned from OpenAI")
	}

	return analysis.ParseResponse(response.Choices[0].Message.Content), nil
}
