package offline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/picstash/picstash/internal/analysis"
)

// Offline is the degraded-mode analyzer: no network, deterministic output
// derived from the filename hint alone.
type Offline struct{}

// New returns a new offline analyzer.
func New() *Offline {
	return &Offline{}
}

var categoryHints = []struct {
	keyword  string
	category string
}{
	{"screenshot", "Screenshots"},
	{"screen shot", "Screenshots"},
	{"receipt", "Receipts"},
	{"invoice", "Receipts"},
	{"scan", "Documents"},
	{"doc", "Documents"},
	{"img", "Photos"},
	{"photo", "Photos"},
	{"pic", "Photos"},
}

// Analyze classifies by filename keywords and returns no text regions.
func (o *Offline) Analyze(ctx context.Context, imageData []byte, filename string) (analysis.Result, error) {
	if err := ctx.Err(); err != nil {
		return analysis.Result{}, err
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	lowered := strings.ToLower(base)

	category := ""
	for _, h := range categoryHints {
		if strings.Contains(lowered, h.keyword) {
			category = h.category
			break
		}
	}

	description := ""
	if base != "" {
		description = fmt.Sprintf("Imported from %q without analysis.", filename)
	}

	return analysis.Result{
		Category:    category,
		Description: description,
	}.Normalize(), nil
}
