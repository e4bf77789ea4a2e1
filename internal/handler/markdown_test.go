package handler

import (
	"strings"
	"testing"
)

func TestRenderMarkdownConvertsHeadings(t *testing.T) {
	got := string(renderMarkdown("## Research\n\nSome *emphasis* here."))

	if !strings.Contains(got, "<h2") || !strings.Contains(got, "Research") {
		t.Fatalf("expected rendered heading, got %q", got)
	}
	if !strings.Contains(got, "<em>emphasis</em>") {
		t.Fatalf("expected rendered emphasis, got %q", got)
	}
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	got := string(renderMarkdown("hello <script>alert('x')</script> world"))

	if strings.Contains(got, "<script") {
		t.Fatalf("expected script tags to be sanitized, got %q", got)
	}
	if !strings.Contains(got, "hello") || !strings.Contains(got, "world") {
		t.Fatalf("expected surrounding text to survive, got %q", got)
	}
}

func TestRenderMarkdownTables(t *testing.T) {
	got := string(renderMarkdown("| a | b |\n| --- | --- |\n| 1 | 2 |"))

	if !strings.Contains(got, "<table>") {
		t.Fatalf("expected GFM table rendering, got %q", got)
	}
}
