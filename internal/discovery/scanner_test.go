package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	testDirs := []string{
		"unit",
		"integration",
		"vendor",
		".hidden",
	}
	for _, dir := range testDirs {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			t.Fatalf("failed to create dir %s: %v", dir, err)
		}
	}

	testFiles := []string{
		"unit/b_suite.yaml",
		"unit/a_suite.yml",
		"integration/smoke_suite.yaml",
		"integration/notes.yaml",
		"vendor/vendored_suite.yaml",
		".hidden/hidden_suite.yaml",
		"suite.txt",
	}
	for _, file := range testFiles {
		fullPath := filepath.Join(tmpDir, file)
		if err := os.WriteFile(fullPath, []byte("suites: []"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner([]string{"vendor"})

	t.Run("scans manifest files in lexical order", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{
			filepath.Join(tmpDir, "integration/smoke_suite.yaml"),
			filepath.Join(tmpDir, "unit/a_suite.yml"),
			filepath.Join(tmpDir, "unit/b_suite.yaml"),
		}
		if len(results) != len(expected) {
			t.Fatalf("expected %d manifests, got %d: %v", len(expected), len(results), results)
		}
		for i := range expected {
			if results[i] != expected[i] {
				t.Errorf("expected %s at %d, got %s", expected[i], i, results[i])
			}
		}
	})

	t.Run("root is scanned even when its name is skipped", func(t *testing.T) {
		results, err := scanner.Scan(filepath.Join(tmpDir, "vendor"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("expected 1 manifest, got %v", results)
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "suite.txt"))
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}

func TestIsManifest(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"example_suite.yaml", true},
		{"suite.yml", true},
		{"SUITE.yaml", false},
		{"example.yaml", false},
		{"example_suite.json", false},
		{"suite", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsManifest(tt.name); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
