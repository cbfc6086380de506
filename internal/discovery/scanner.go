package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ManifestMarker is the substring a manifest file name must contain
const ManifestMarker = "suite"

// Scanner lists suite manifest files under a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all manifest files in the given root directory, in lexical order
func (s *Scanner) Scan(root string) ([]string, error) {
	var manifests []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") || s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if IsManifest(d.Name()) {
			manifests = append(manifests, path)
		}
		return nil
	})

	return manifests, err
}

// IsManifest reports whether a file name follows the manifest naming convention
func IsManifest(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".yaml" && ext != ".yml" {
		return false
	}
	return strings.Contains(strings.TrimSuffix(name, filepath.Ext(name)), ManifestMarker)
}
