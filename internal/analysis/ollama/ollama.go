package ollama

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

// Ollama analyzes images with a locally hosted vision model.
type Ollama struct{}

// New returns a new Ollama analyzer.
func New() *Ollama {
	return &Ollama{}
}

// Analyze posts the image to the Ollama generate API and decodes the
// JSON reply.
func (o *Ollama) Analyze(ctx context.Context, imageData []byte, filename string) (analysis.Result, error) {
	ollamaURL := os.Getenv("OLLAMA_URL")
	if ollamaURL == "" {
		ollamaURL = os.Getenv("OLLAMA_HOST")
	}
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}

	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "llava:13b"
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"model":  model,
		"prompt": analysis.BuildPrompt(),
		"images": []string{base64.StdEncoding.EncodeToString(imageData)},
		"stream": false,
		"options": map[string]interface{}{
			"temperature": 0.1,
		},
	})
	if err != nil {
		return analysis.Result{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", ollamaURL+"/api/generate", bytes.NewBuffer(requestBody))
	if err != nil {
		return analysis.Result{}, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return analysis.Result{}, fmt.Errorf("failed to decode response body: %w", err)
	}

	return analysis.ParseResponse(response.Response), nil
}
