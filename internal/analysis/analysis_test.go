package analysis

import "testing"

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantCategory string
		wantTexts    int
	}{
		{
			name:         "plain json",
			raw:          `{"category":"Photos","description":"a dog","texts":[{"text":"hi","x":5,"y":10}]}`,
			wantCategory: "Photos",
			wantTexts:    1,
		},
		{
			name:         "markdown fenced",
			raw:          "```json\n{\"category\":\"Receipts\",\"description\":\"\",\"texts\":[]}\n```",
			wantCategory: "Receipts",
			wantTexts:    0,
		},
		{
			name:         "prose around the object",
			raw:          "Here is the analysis:\n{\"category\":\"Art\",\"texts\":[]}\nHope that helps!",
			wantCategory: "Art",
			wantTexts:    0,
		},
		{
			name:         "missing fields get defaults",
			raw:          `{"description":"no label"}`,
			wantCategory: DefaultCategory,
			wantTexts:    0,
		},
		{
			name:         "garbage degrades to defaults",
			raw:          "sorry, I cannot help with that",
			wantCategory: DefaultCategory,
			wantTexts:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseResponse(tt.raw)
			if got.Category != tt.wantCategory {
				t.Errorf("Expected category %q, got %q", tt.wantCategory, got.Category)
			}
			if got.Texts == nil {
				t.Fatal("Texts must never be nil")
			}
			if len(got.Texts) != tt.wantTexts {
				t.Errorf("Expected %d texts, got %d", tt.wantTexts, len(got.Texts))
			}
		})
	}
}

func TestImageFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"photo.PNG", "png"},
		{"anim.gif", "gif"},
		{"modern.webp", "webp"},
		{"pic.jpg", "jpeg"},
		{"pic.jpeg", "jpeg"},
		{"noext", "jpeg"},
	}

	for _, tt := range tests {
		if got := ImageFormat(tt.filename); got != tt.want {
			t.Errorf("ImageFormat(%q): expected %q, got %q", tt.filename, tt.want, got)
		}
	}
}
