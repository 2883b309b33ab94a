package statement

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// minTextLen is the smallest statement text worth sending for extraction.
const minTextLen = 50

// ErrTooShort indicates the statement held no meaningful text.
var ErrTooShort = errors.New("statement: file appears to be empty or contains very little text")

// ReadStatement extracts the text of a statement file. PDF files go
// through the PDF text extractor; anything else is read as plain text.
func ReadStatement(path string) (string, error) {
	var text string
	var err error

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = pdfText(path)
	} else {
		text, err = plainText(path)
	}
	if err != nil {
		return "", err
	}

	if len(strings.TrimSpace(text)) < minTextLen {
		return "", fmt.Errorf("%w: %s", ErrTooShort, filepath.Base(path))
	}
	return text, nil
}

func plainText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("statement: reading %s: %w", filepath.Base(path), err)
	}
	return string(raw), nil
}

// pdfText pulls the plain text out of a PDF. The parser panics on some
// malformed files, so the panic is folded into the error return.
func pdfText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("statement: parsing pdf %s: %v", filepath.Base(path), r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("statement: opening pdf %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	body, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("statement: extracting pdf text from %s: %w", filepath.Base(path), err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		return "", fmt.Errorf("statement: extracting pdf text from %s: %w", filepath.Base(path), err)
	}
	return buf.String(), nil
}
