package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadTextFile reads a single UTF-8 text file.
func LoadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadResumeTexts reads every .txt file in a directory, in filename
// order. Subdirectories and other extensions are skipped.
// Returns ErrNoResumeFiles if the directory holds no resume files.
func LoadResumeTexts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != ".txt" {
			continue
		}

		text, err := LoadTextFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}

	if len(texts) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoResumeFiles, dir)
	}
	return texts, nil
}
