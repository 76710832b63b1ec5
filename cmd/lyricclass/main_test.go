package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuel/lyric-classifier/corpus"
)

func writeCorpora(t *testing.T) string {
	dir := t.TempDir()
	files := map[string]string{
		"pop.txt":     "string string string",
		"country.txt": "roots roots boots",
		"lyricclass.yaml": `
classes: [Pop, Country]
corpora:
  - path: pop.txt
    class: Pop
  - path: country.txt
    class: Country
  - path: missing.txt
    class: Country
samples:
  - "roots boots"
  - "string"
`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "lyricclass.yaml")
}

func TestRunSamples(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", writeCorpora(t), "-skip-unavailable"}, &stdout, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if got := stdout.String(); got != "Country\nPop\n" {
		t.Errorf("Expected Country then Pop, got %q", got)
	}
	if !strings.Contains(stderr.String(), "skipping Country corpus") {
		t.Errorf("Expected the missing corpus to be logged, got %q", stderr.String())
	}
}

func TestRunArgsVerbose(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", writeCorpora(t), "-skip-unavailable", "-v", "", "string"}, &stdout, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 output lines, got %q", lines)
	}
	if lines[0] != "Country: 0.5 || Pop: 0.5" || lines[1] != "Pop" {
		t.Errorf("Expected an even split going to Pop, got %q", lines[:2])
	}
	if lines[3] != "Pop" {
		t.Errorf("Expected Pop, got %q", lines[3])
	}
	if !strings.Contains(stderr.String(), "trained 1 Pop and 1 Country corpora, 3 distinct tokens") {
		t.Errorf("Expected a training summary, got %q", stderr.String())
	}
}

func TestRunMissingCorpus(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", writeCorpora(t)}, &stdout, &stderr)
	if !errors.Is(err, corpus.ErrCorpusUnavailable) {
		t.Fatalf("Expected ErrCorpusUnavailable, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected no labels, got %q", stdout.String())
	}
}

func TestRunBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-store", "redis", "-config", writeCorpora(t)}, &stdout, &stderr); err == nil {
		t.Error("Expected an unknown store to fail")
	}
	if err := run([]string{"-nope"}, &stdout, &stderr); err == nil {
		t.Error("Expected an unknown flag to fail")
	}
}
