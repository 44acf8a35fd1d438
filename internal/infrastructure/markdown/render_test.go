package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
		excludes []string
	}{
		{
			name:     "bold and lists",
			source:   "**Flipkart** is cheapest:\n\n- ₹23,999\n- 2 Days",
			contains: []string{"<strong>Flipkart</strong>", "<li>₹23,999</li>", "<ul>"},
		},
		{
			name:     "hard wraps",
			source:   "line one\nline two",
			contains: []string{"line one<br>"},
		},
		{
			name:     "bare links are linkified",
			source:   "See https://www.croma.com for details",
			contains: []string{`<a href="https://www.croma.com">`},
		},
		{
			name:     "gfm tables",
			source:   "| Store | Price |\n|---|---|\n| Croma | 29990 |",
			contains: []string{"<table>", "<td>Croma</td>"},
		},
		{
			name:     "raw html is omitted",
			source:   "hello <script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := ToHTML(tt.source)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, html, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, html, unwanted)
			}
		})
	}
}

func TestToHTML_Blank(t *testing.T) {
	html, err := ToHTML("  \n ")
	require.NoError(t, err)
	assert.Empty(t, html)
}
