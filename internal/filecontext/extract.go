// Package filecontext turns an uploaded file into a block of text that can be
// prepended to a user message.
package filecontext

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxFileSize is the largest file Extract will read.
const MaxFileSize = 1 << 20

// textExtensions are the extensions whose content is read as plain text.
var textExtensions = map[string]bool{
	// plain text and markup
	".txt": true, ".text": true, ".md": true, ".markdown": true, ".rst": true, ".log": true,
	// source
	".py": true, ".go": true, ".js": true, ".ts": true, ".java": true, ".c": true, ".h": true,
	".cpp": true, ".rs": true, ".rb": true, ".sh": true, ".html": true, ".css": true, ".sql": true,
	// structured data
	".json": true, ".yaml": true, ".yml": true, ".toml": true, ".xml": true, ".ini": true,
	// tabular
	".csv": true, ".tsv": true,
}

// Supported reports whether the content of path would be extracted.
func Supported(path string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(path))]
}

// Extract returns the context block for the file at path. An empty path means
// nothing was uploaded. Extract never fails: unsupported files and read errors
// are reported as short bracketed notes in the returned text.
func Extract(path string) string {
	if path == "" {
		return ""
	}

	name := filepath.Base(path)
	if !Supported(path) {
		return fmt.Sprintf("\n\n[File uploaded: %s (content not extracted)]\n", name)
	}

	content, err := readText(path)
	if err != nil {
		return fmt.Sprintf("\n\n[Error reading file: %v]\n", err)
	}

	return fmt.Sprintf("\n\n[Context from file: %s]\n%s\n[End of file context]\n", name, content)
}

// readText reads a UTF-8 file of at most MaxFileSize bytes.
func readText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Read one byte past the limit so oversized files can be told apart.
	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", filepath.Base(path), err)
	}
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("%s is larger than %d bytes", filepath.Base(path), MaxFileSize)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s is not valid UTF-8 text", filepath.Base(path))
	}

	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
