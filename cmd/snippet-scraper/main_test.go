package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestScrapeCommand(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "台北 美食", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`<div class="y6Uyqe"><span>士林夜市</span> <span>大餅包小餅</span></div>`))
	}))
	defer ts.Close()

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"snippet-scraper", "--search-url", ts.URL, "台北", "美食"})
	require.NoError(t, err)
	assert.JSONEq(t, `["士林夜市","大餅包小餅"]`, out.String())
}

func TestScrapeCommand_CustomClass(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<p class="hit">命中</p><p class="y6Uyqe">略過</p>`))
	}))
	defer ts.Close()

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"snippet-scraper", "--search-url", ts.URL, "--class", "hit", "q"})
	require.NoError(t, err)
	assert.JSONEq(t, `["命中"]`, out.String())
}

func TestScrapeCommand_FailurePrintsEmptyList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	var out bytes.Buffer
	app := newApp(&out)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run([]string{"snippet-scraper", "--search-url", ts.URL, "q"})
	assert.Error(t, err)
	assert.JSONEq(t, `[]`, out.String())
}

func TestScrapeCommand_RequiresQuery(t *testing.T) {
	var out bytes.Buffer
	app := newApp(&out)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run([]string{"snippet-scraper"})
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
