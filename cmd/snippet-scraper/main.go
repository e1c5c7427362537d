package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ashwinyue/next-nlp/internal/config"
	"github.com/ashwinyue/next-nlp/internal/logger"
	"github.com/ashwinyue/next-nlp/internal/scraper"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "snippet-scraper",
		Usage:     "Print the visible text of the search result snippet for a query",
		ArgsUsage: "QUERY...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "class",
				Usage: "CSS class of the snippet element",
				Value: scraper.DefaultResultClass,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "HTTP request timeout",
				Value: 10 * time.Second,
			},
			&cli.StringFlag{
				Name:  "search-url",
				Usage: "Search page URL",
				Value: scraper.DefaultSearchURL,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Action: func(c *cli.Context) error {
			return scrape(c, out)
		},
	}
}

func scrape(c *cli.Context, out io.Writer) error {
	log, err := logger.New(config.LogConfig{Level: c.String("log-level"), Format: "console"})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return cli.Exit("query is required", 2)
	}

	client := scraper.New(
		scraper.WithSearchURL(c.String("search-url")),
		scraper.WithResultClass(c.String("class")),
		scraper.WithHTTPClient(&http.Client{Timeout: c.Duration("timeout")}),
	)

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	texts, fetchErr := client.FetchResultText(ctx, query)
	if fetchErr != nil {
		// 失败时仍输出空列表
		log.Error("scrape failed", zap.String("query", query), zap.Error(fetchErr))
		texts = []string{}
	}

	if err := json.NewEncoder(out).Encode(texts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if fetchErr != nil {
		return cli.Exit("", 1)
	}
	return nil
}
