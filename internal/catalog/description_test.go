// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package catalog

import "testing"

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Just text", "Just text"},
		{"inline tags", "Fight <strong>hard</strong> and <i>fast</i>", "Fight hard and fast"},
		{"line breaks", "Line one<br>Line two<br/>Line three", "Line one\nLine two\nLine three"},
		{"paragraphs", "<p>First</p><p>Second</p>", "First\nSecond"},
		{"list", "<ul><li>Co-op</li><li>PvP</li></ul>", "Co-op\nPvP"},
		{"entities", "Tom &amp; Jerry &lt;3", "Tom & Jerry <3"},
		{"whitespace", "  lots   of \t space  ", "lots of space"},
		{"script dropped", "Before<script>alert(1)</script>After", "BeforeAfter"},
		{"image only", `<img src="https://example.com/a.gif">`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
