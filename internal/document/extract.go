// Package document extracts raw rule text from regulatory documents.
package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extract reads the rules document at path and returns its plain text.
// PDF files go through the PDF text extractor; any other extension is read
// as-is. An empty result is an error: without rule text there is nothing
// to validate, and this is the one failure that aborts the whole run.
func Extract(path string) (string, error) {
	var text string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		extracted, err := extractPDF(path)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from '%s': %w", path, err)
		}
		text = extracted
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read rules document '%s': %w", path, err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text could be extracted from '%s'", path)
	}
	return text, nil
}

func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
