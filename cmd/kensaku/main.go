// Package main is the Kensaku CLI entry point.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kensaku/internal/cli"
	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/corpus"
	"github.com/hyperjump/kensaku/internal/models"
	"github.com/hyperjump/kensaku/internal/search"
	"github.com/hyperjump/kensaku/internal/server"
	"github.com/hyperjump/kensaku/internal/watcher"
	"github.com/hyperjump/kensaku/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kensaku/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "repl":
		runRepl()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("kensaku version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// buildModels loads the corpus file and builds both ranking models.
func buildModels(cfg *config.Config) (*corpus.Store, *search.Engine, error) {
	store, err := corpus.Load(cfg.Corpus.Path, cfg.Corpus.TitleColumn, cfg.Corpus.BodyColumn)
	if err != nil {
		return nil, nil, err
	}
	engine, err := search.BuildEngine(store, &cfg.Search)
	if err != nil {
		return nil, nil, err
	}
	return store, engine, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("corpus_path", cfg.Corpus.Path),
		zap.Bool("debug", debugMode),
	)

	store, engine, err := buildModels(cfg)
	if err != nil {
		logger.Fatal("Failed to build models", zap.Error(err))
	}
	logger.Info("models built",
		zap.Int("documents", store.Len()),
		zap.Int("vocabulary_size", engine.VocabularySize()),
		zap.Float64("avg_doc_length", engine.AvgDocLength()),
	)

	reload := func() (*corpus.Store, *search.Engine, error) {
		return buildModels(cfg)
	}
	srv := server.NewServer(engine, store, cfg, logger, reload)

	if cfg.Watch.Enabled {
		watchOpts := []watcher.WatcherOption{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc := watcher.NewWatcher(cfg.Corpus.Path, func(path string) {
			newStore, newEngine, err := buildModels(cfg)
			if err != nil {
				logger.Warn("corpus rebuild failed", zap.String("path", path), zap.Error(err))
				return
			}
			srv.SetEngine(newStore, newEngine)
			logger.Info("corpus rebuilt", zap.Int("documents", newStore.Len()))
		}, watchOpts...)
		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
}

// buildSearchQuery joins all positional args with spaces so multi-word
// queries work with or without quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query terms to the front, so "kensaku search stock news -top-k 3" works.
func searchArgsReorder(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if strings.HasPrefix(args[i], "-") {
			flags = append(flags, args[i])
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}
		positional = append(positional, args[i])
	}
	if len(flags) == 0 {
		return args
	}
	return append(flags, positional...)
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	topK := fs.Int("top-k", 0, "number of results (0 = server default)")
	tfidfWeight := fs.Float64("tfidf-weight", 0, "TF-IDF weight (0 with bm25-weight 0 = server defaults)")
	bm25Weight := fs.Float64("bm25-weight", 0, "BM25 weight (0 with tfidf-weight 0 = server defaults)")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	queryStr := buildSearchQuery(fs.Args())

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	req := &models.SearchRequest{
		Query:       queryStr,
		TopK:        *topK,
		TFIDFWeight: *tfidfWeight,
		BM25Weight:  *bm25Weight,
	}
	response, err := searchViaHTTP(*serverURL, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL string, req *models.SearchRequest) (*models.SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

// runRepl loads the corpus, builds both models in-process, and runs an
// interactive query loop without a server.
func runRepl() {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loading corpus from %s...\n", cfg.Corpus.Path)
	store, engine, err := buildModels(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build models: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ready: %d documents, %d vocabulary terms.\n", store.Len(), engine.VocabularySize())
	fmt.Println("Enter a query, 'help' for tips, or 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("search> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		query := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(query) {
		case "exit", "quit", "q":
			return
		case "help":
			fmt.Println("Combine keywords related to your topic, e.g. 'stock market news'.")
			fmt.Println("Both titles and article bodies are searched; results are ranked 0-1.")
			continue
		case "":
			fmt.Println("Please enter a query.")
			continue
		}
		req := &models.SearchRequest{Query: query, TopK: cfg.Search.DefaultTopK}
		response, err := engine.Search(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			continue
		}
		cli.PrintSearchResults(response)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/api/v1/status")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var status map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Fprintf(os.Stderr, "Decode status failed: %v\n", err)
		os.Exit(1)
	}
	out, _ := json.MarshalIndent(status, "", "  ")
	fmt.Println(string(out))
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Println("Usage: kensaku search [flags] <query terms...>")
	fs.PrintDefaults()
}

func printUsage() {
	fmt.Println(`Kensaku - hybrid TF-IDF + BM25 search engine

Usage:
  kensaku server [-config path] [-debug]     start the HTTP API server
  kensaku search [flags] <query terms...>    query a running server
  kensaku repl [-config path]                interactive in-process search
  kensaku status [-server url]               show server status
  kensaku version                            print version
  kensaku help                               show this help`)
}
