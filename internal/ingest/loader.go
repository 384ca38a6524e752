// Package ingest builds the document corpus the vector index is rebuilt
// from. It is an offline batch path, separate from interactive serving.
package ingest

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"carbongpt/internal/clause"
)

// Page is one unit of a source document carrying provenance metadata. Pages
// are what get chunked and indexed.
type Page struct {
	Source  string
	Number  int
	Clause  string
	Content string
}

// Loader reads corpus documents from a directory. Plain text and markdown
// are read directly; PDFs go through the pdftotext tool, whose form-feed
// page breaks preserve page numbers.
type Loader struct {
	pdfToText string
	log       *zap.Logger
}

func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{pdfToText: "pdftotext", log: log}
}

// LoadDir loads every supported document under dir. Unsupported files are
// skipped with a log line; a document that fails to load is skipped too, so
// one broken file does not abort a corpus rebuild.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus dir: %w", err)
	}

	var pages []Page
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(dir, name)

		var text string
		switch strings.ToLower(filepath.Ext(name)) {
		case ".txt", ".md":
			data, err := os.ReadFile(path)
			if err != nil {
				l.log.Warn("failed to load document", zap.String("file", name), zap.Error(err))
				continue
			}
			text = string(data)
		case ".pdf":
			out, err := exec.CommandContext(ctx, l.pdfToText, path, "-").Output()
			if err != nil {
				l.log.Warn("failed to extract pdf", zap.String("file", name), zap.Error(err))
				continue
			}
			text = string(out)
		default:
			l.log.Debug("skipping unsupported file", zap.String("file", name))
			continue
		}
		pages = append(pages, pagesFromText(name, text)...)
	}
	return pages, nil
}

// pagesFromText splits extracted text on form feeds and tags every page
// with its clause locator.
func pagesFromText(source, text string) []Page {
	var pages []Page
	for i, content := range strings.Split(text, "\f") {
		if strings.TrimSpace(content) == "" {
			continue
		}
		pages = append(pages, Page{
			Source:  source,
			Number:  i + 1,
			Clause:  clause.Extract(content),
			Content: content,
		})
	}
	return pages
}
