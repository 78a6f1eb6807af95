package offline

import (
	"context"
	"testing"

	"github.com/picstash/picstash/internal/analysis"
)

func TestOfflineClassifiesByFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Screenshot 2024-06-01.png", "Screenshots"},
		{"receipt-groceries.jpg", "Receipts"},
		{"invoice_march.pdf.png", "Receipts"},
		{"IMG_2041.jpg", "Photos"},
		{"mystery.bin", analysis.DefaultCategory},
	}

	o := New()
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := o.Analyze(context.Background(), []byte("bytes"), tt.filename)
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if got.Category != tt.want {
				t.Errorf("Expected category %q, got %q", tt.want, got.Category)
			}
			if got.Texts == nil {
				t.Error("Texts must never be nil")
			}
		})
	}
}

func TestOfflineIsDeterministic(t *testing.T) {
	o := New()
	first, _ := o.Analyze(context.Background(), []byte("a"), "beach.jpg")
	second, _ := o.Analyze(context.Background(), []byte("b"), "beach.jpg")
	if first.Category != second.Category || first.Description != second.Description {
		t.Error("Offline analysis must not depend on image bytes")
	}
}
