package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeExtractsVisibleText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><style>body{}</style></head>
<body><h1>VCS Program</h1><script>var x = 1;</script><p>Validation rules apply.</p></body></html>`))
	}))
	defer srv.Close()

	pages := NewScraper(srv.Client(), nil).Scrape(context.Background(), []string{srv.URL})
	require.Len(t, pages, 1)

	assert.Equal(t, srv.URL, pages[0].Source)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, WebClause, pages[0].Clause)
	assert.Contains(t, pages[0].Content, "VCS Program")
	assert.Contains(t, pages[0].Content, "Validation rules apply.")
	assert.NotContains(t, pages[0].Content, "var x = 1;")
	assert.NotContains(t, pages[0].Content, "body{}")
}

func TestScrapeSkipsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			_, _ = w.Write([]byte("<html><body>fine</body></html>"))
			return
		}
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	pages := NewScraper(srv.Client(), nil).Scrape(context.Background(), []string{srv.URL + "/missing", srv.URL + "/ok"})
	require.Len(t, pages, 1)
	assert.Contains(t, pages[0].Content, "fine")
}
