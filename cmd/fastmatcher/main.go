// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/fastmatcher"
	"github.com/poiesic/fastmatcher/core"
	"github.com/poiesic/fastmatcher/matcher"
	"github.com/poiesic/fastmatcher/search"
	"github.com/poiesic/fastmatcher/sources"
	"github.com/poiesic/fastmatcher/web"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "fastmatcher",
		Usage: "Streaming multi-keyword search with context windows",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search files or directories for keywords",
				ArgsUsage: "[file ...]",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "keyword",
						Aliases:  []string{"k"},
						Usage:    "Keyword to search for (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Directory to scan recursively",
					},
					&cli.IntFlag{
						Name:    "context",
						Aliases: []string{"c"},
						Usage:   "Context lines on each side of a match",
						Value:   1,
					},
					&cli.BoolFlag{
						Name:    "ignore-case",
						Aliases: []string{"i"},
						Usage:   "Case-insensitive matching (ASCII letters only)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size (default: half the CPUs)",
					},
					&cli.IntFlag{
						Name:  "buffer",
						Usage: "Result channel capacity",
						Value: search.DefaultResultBuffer,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP search service",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "Host to bind to",
						Value: "localhost",
					},
					&cli.IntFlag{
						Name:  "port",
						Usage: "Port to listen on",
						Value: 8080,
					},
					&cli.DurationFlag{
						Name:  "retention",
						Usage: "How long completed search results are kept",
						Value: time.Hour,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size (default: half the CPUs)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func searchCommand(c *cli.Context) error {
	srcs, err := collectSources(c)
	if err != nil {
		return err
	}
	if len(srcs) == 0 {
		return fmt.Errorf("nothing to search: pass file arguments or --dir")
	}

	automaton, err := matcher.New(c.StringSlice("keyword"), c.Bool("ignore-case"))
	if err != nil {
		return err
	}

	opts := []search.Option{search.WithResultBuffer(c.Int("buffer"))}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, search.WithPoolSize(workers))
	}
	searcher, err := search.NewSearcher(automaton, c.Int("context"), opts...)
	if err != nil {
		return err
	}
	defer searcher.Release()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := searcher.SearchMany(ctx, srcs)
	total := 0
	for {
		record, ok := results.Next()
		if !ok {
			break
		}
		printRecord(os.Stdout, record)
		total++
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("search interrupted: %w", err)
	}

	fmt.Fprintf(os.Stderr, "%d match(es)\n", total)
	return nil
}

func collectSources(c *cli.Context) ([]sources.Source, error) {
	var srcs []sources.Source
	for _, arg := range c.Args().Slice() {
		srcs = append(srcs, sources.File(arg))
	}
	if dir := c.String("dir"); dir != "" {
		walked, err := sources.WalkDir(dir)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
		srcs = append(srcs, walked...)
	}
	return srcs, nil
}

func printRecord(w io.Writer, record *core.MatchRecord) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "%s:%d\n", record.Source, record.LineNo)
	fmt.Fprintf(w, "keywords: %s\n", strings.Join(record.Keywords, ", "))
	for _, line := range record.Lines {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func serveCommand(c *cli.Context) error {
	opts := []fastmatcher.ServiceOption{
		fastmatcher.WithRetention(c.Duration("retention")),
	}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, fastmatcher.WithPoolSize(workers))
	}
	service, err := fastmatcher.NewService(c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	server, err := web.NewServer(service.SessionManager(), &web.Config{
		Host: c.String("host"),
		Port: c.Int("port"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
