package deck

import (
	"encoding/json"
	"testing"
)

func TestFlattenRichText(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		format string
		want   string
	}{
		{"plain", `"Hello world"`, "", "Hello world"},
		{"null", `null`, "", ""},
		{"empty", ``, "", ""},
		{"number", `42`, "", "42"},
		{"html blocks", `"<p>First <b>bold</b></p><p>Second</p>"`, "", "First bold\nSecond"},
		{"html br", `"<div>a<br>b</div>"`, "", "a\nb"},
		{"html list", `"<ul><li>one</li><li>two</li></ul>"`, "", "one\ntwo"},
		{"html script dropped", `"<p>x</p><script>alert(1)</script>"`, "", "x"},
		{"not html", `"a < b and c > d"`, "", "a < b and c > d"},
		{
			"prosemirror",
			`{"type":"doc","content":[
				{"type":"heading","content":[{"type":"text","text":"Title"}]},
				{"type":"paragraph","content":[{"type":"text","text":"Line one"},{"type":"hardBreak"},{"type":"text","text":"Line two"}]}
			]}`,
			"",
			"Title\nLine one\nLine two",
		},
		{"object with text", `{"text": "<p>wrapped</p>"}`, "", "wrapped"},
		{"array", `["a", "<p>b</p>", null]`, "", "a\nb"},
		{"markdown", `"# Heading\n\nSome *emphasis* and a [link](http://x).\n\n- item"`, FormatMarkdown, "Heading\nSome emphasis and a link.\nitem"},
		{"markdown code", "\"```\\ncode line\\n```\"", FormatMarkdown, "code line"},
		{"markdown ignored without format", `"# not a heading"`, "", "# not a heading"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlattenRichText(json.RawMessage(tt.raw), tt.format); got != tt.want {
				t.Errorf("FlattenRichText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlattenRichTextNormalizesNFC(t *testing.T) {
	// "e" followed by a combining acute accent
	got := FlattenRichText(json.RawMessage(`"cafe\u0301"`), "")
	if got != "caf\u00e9" {
		t.Errorf("got %q, want NFC composed form", got)
	}
}
