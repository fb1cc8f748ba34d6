// Command quotelai translates motivational quotes through an OpenAI-compatible API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/ZaguanLabs/quotelai"
	"github.com/ZaguanLabs/quotelai/cache"
	"github.com/ZaguanLabs/quotelai/provider"
	"github.com/ZaguanLabs/quotelai/quotes"
	"github.com/ZaguanLabs/quotelai/settings"
	"github.com/ZaguanLabs/quotelai/store"
)

// Opts with all CLI options
type Opts struct {
	Lang   string `short:"l" long:"lang" env:"QUOTELAI_LANG" description:"target language code (e.g. fr, pt-BR)"`
	Author string `short:"a" long:"author" description:"author of the quote given as argument"`
	Quotes string `short:"q" long:"quotes" env:"QUOTELAI_QUOTES" description:"quote file (JSON or HTML) used when no quote is given"`

	StateDir string        `long:"state-dir" env:"QUOTELAI_STATE_DIR" description:"directory holding settings and cache (default: user config dir)"`
	Redis    string        `long:"redis" env:"QUOTELAI_REDIS" description:"redis URL holding settings and cache instead of the state dir"`
	Timeout  time.Duration `long:"timeout" env:"QUOTELAI_TIMEOUT" default:"60s" description:"HTTP client timeout"`

	Settings struct {
		Enable      bool   `long:"enable" description:"enable translation"`
		Disable     bool   `long:"disable" description:"disable translation"`
		APIURL      string `long:"api-url" description:"chat-completions endpoint"`
		APIKey      string `long:"api-key" env:"OPENAI_API_KEY" description:"API key sent as bearer token"`
		Model       string `long:"model" description:"model name"`
		Temperature string `long:"temperature" description:"sampling temperature"`
		Prompt      string `long:"prompt" description:"custom system prompt, {lang} is replaced with the language name"`
		Prefetch    bool   `long:"prefetch" description:"prefetch a translation after each display"`
		NoPrefetch  bool   `long:"no-prefetch" description:"turn prefetching off"`
		Save        bool   `long:"save" description:"persist the settings given on the command line"`
	} `group:"settings"`

	Test         bool   `long:"test" description:"check the endpoint and credentials"`
	PrefetchNow  bool   `long:"prefetch-now" description:"translate one random quote into the cache"`
	ExportCache  string `long:"export-cache" description:"write the translation cache to a JSON file"`
	ImportCache  string `long:"import-cache" description:"load translations from a JSON export"`
	ShowSettings bool   `long:"show-settings" description:"print the effective settings"`
	Stats        bool   `long:"stats" description:"print translator counters when done"`
	JSON         bool   `long:"json" description:"print results as JSON"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// Build-time variables (can be overridden with ldflags)
var (
	version   = quotelai.Version
	commit    = quotelai.GitCommit
	buildDate = quotelai.BuildDate
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	_ = godotenv.Load()

	var opts Opts
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS] [quote text]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return nil
		}
		return err
	}

	if opts.Version {
		fmt.Fprintf(stdout, "%s %s\n", quotelai.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		fmt.Fprintf(stdout, "  golang:  %s\n", runtime.Version())
		return nil
	}

	if opts.NoColor {
		color.NoColor = true
	}
	logger := setupLog(stderr, opts.Debug, opts.Settings.APIKey)

	kv, closeKV, err := openStore(ctx, opts)
	if err != nil {
		return err
	}
	defer closeKV()

	cfg, err := resolveSettings(ctx, settings.NewStore(kv), opts)
	if err != nil {
		return err
	}
	logger.Logf("[DEBUG] settings: enabled=%v model=%s url=%s prefetch=%v", cfg.Enabled, cfg.Model, cfg.APIURL, cfg.Prefetch)

	tc := cache.NewStoreCache(kv, cache.MaxEntries, cache.WithLogger(logger))
	p := provider.NewOpenAIProvider(provider.OpenAIConfig{Timeout: opts.Timeout, Logger: logger})
	src := settings.Static(cfg)
	translator := quotelai.NewTranslator(src, p, quotelai.WithCache(tc), quotelai.WithLogger(logger))

	acted := opts.Settings.Save
	if opts.Settings.Save {
		fmt.Fprintln(stderr, "Settings saved")
	}

	if opts.ShowSettings {
		acted = true
		if err := printSettings(stdout, cfg); err != nil {
			return err
		}
	}

	if opts.ImportCache != "" {
		acted = true
		res, err := cache.NewImporter(tc).ImportFromFile(opts.ImportCache)
		if err != nil {
			return fmt.Errorf("importing cache: %w", err)
		}
		fmt.Fprintf(stderr, "Imported %d translations (%d failed), cache holds %d\n", res.Imported, res.Failed, tc.Len())
	}

	if opts.ExportCache != "" {
		acted = true
		meta := map[string]string{"tool": quotelai.Name, "version": version}
		if err := cache.NewExporter(tc).ExportToFile(opts.ExportCache, meta); err != nil {
			return fmt.Errorf("exporting cache: %w", err)
		}
		fmt.Fprintf(stderr, "Exported %d translations to %s\n", tc.Len(), opts.ExportCache)
	}

	if opts.Test {
		acted = true
		res := quotelai.NewTester(src, p, logger).Test(ctx, nil)
		if err := printTestResult(stdout, res, opts.JSON); err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("connectivity check failed: %s", res.Code)
		}
	}

	var source quotes.Source
	if opts.PrefetchNow || opts.Lang != "" {
		if source, err = loadQuotes(opts.Quotes); err != nil {
			return err
		}
	}

	if opts.PrefetchNow {
		acted = true
		if opts.Lang == "" {
			return errors.New("--lang is required for --prefetch-now")
		}
		now := cfg
		now.Prefetch = true
		pf := quotelai.NewPrefetcher(quotelai.NewTranslator(settings.Static(now), p,
			quotelai.WithCache(tc), quotelai.WithLogger(logger)), source,
			quotelai.WithPrefetchDelay(0), quotelai.WithPrefetchLogger(logger))
		if err := pf.Run(ctx, opts.Lang); err != nil {
			return fmt.Errorf("prefetch failed: %w", err)
		}
		fmt.Fprintf(stderr, "Cache holds %d translations\n", tc.Len())
	}

	if opts.Lang == "" {
		if len(rest) > 0 {
			return errors.New("--lang is required")
		}
		if !acted {
			parser.WriteHelp(stderr)
			return errors.New("--lang is required")
		}
		return nil
	}
	if opts.PrefetchNow && len(rest) == 0 {
		return nil
	}

	q, err := pickQuote(rest, opts.Author, source, opts.Lang)
	if err != nil {
		return err
	}

	r := newTermRenderer(stdout)
	shown := quotelai.NewDisplay(translator, r).Show(ctx, q, opts.Lang)
	r.Finish()
	if !shown {
		printOriginal(stdout, q)
	}

	if cfg.Prefetch && shown {
		<-quotelai.NewPrefetcher(translator, source, quotelai.WithPrefetchDelay(0), quotelai.WithPrefetchLogger(logger)).
			Trigger(ctx, opts.Lang)
	}

	if opts.Stats {
		st := translator.Stats()
		fmt.Fprintf(stderr, "cache hits: %d, misses: %d, requests: %d, failures: %d, skipped chunks: %d\n",
			st.CacheHits, st.CacheMisses, st.Requests, st.Failures, st.SkippedChunks)
	}
	return nil
}

// openStore returns the KV backend for settings and cache.
func openStore(ctx context.Context, opts Opts) (store.KV, func(), error) {
	if opts.Redis != "" {
		rs, err := store.NewRedisStore(ctx, store.RedisConfig{URL: opts.Redis})
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return rs, func() { _ = rs.Close() }, nil
	}

	dir := opts.StateDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, nil, fmt.Errorf("locating config dir: %w", err)
		}
		dir = filepath.Join(base, quotelai.Name)
	}
	fs, err := store.NewFileStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening state dir: %w", err)
	}
	return fs, func() {}, nil
}

// resolveSettings loads saved settings and applies command-line edits,
// persisting them when --save is set.
func resolveSettings(ctx context.Context, st *settings.Store, opts Opts) (settings.Settings, error) {
	so := opts.Settings
	if so.Enable && so.Disable {
		return settings.Settings{}, errors.New("--enable and --disable are mutually exclusive")
	}
	if so.Prefetch && so.NoPrefetch {
		return settings.Settings{}, errors.New("--prefetch and --no-prefetch are mutually exclusive")
	}

	var temperature *float32
	if so.Temperature != "" {
		v, err := strconv.ParseFloat(so.Temperature, 32)
		if err != nil || v < 0 || v > 2 {
			return settings.Settings{}, fmt.Errorf("invalid --temperature %q, want a number between 0 and 2", so.Temperature)
		}
		t := float32(v)
		temperature = &t
	}

	edit := func(cfg *settings.Settings) {
		switch {
		case so.Enable:
			cfg.Enabled = true
		case so.Disable:
			cfg.Enabled = false
		}
		switch {
		case so.Prefetch:
			cfg.Prefetch = true
		case so.NoPrefetch:
			cfg.Prefetch = false
		}
		if so.APIURL != "" {
			cfg.APIURL = so.APIURL
		}
		if so.APIKey != "" {
			cfg.APIKey = so.APIKey
		}
		if so.Model != "" {
			cfg.Model = so.Model
		}
		if temperature != nil {
			cfg.Temperature = *temperature
		}
		if so.Prompt != "" {
			cfg.CustomPrompt = so.Prompt
		}
	}

	if so.Save {
		cfg, err := st.Update(ctx, edit)
		if err != nil {
			return cfg, &quotelai.ConfigError{Message: "saving settings", Cause: err}
		}
		return cfg, nil
	}

	cfg, err := st.Load(ctx)
	if err != nil {
		return cfg, &quotelai.ConfigError{Message: "loading settings", Cause: err}
	}
	edit(&cfg)
	return cfg, nil
}

// loadQuotes returns the quote file merged over the built-in list.
func loadQuotes(path string) (quotes.Collection, error) {
	c := quotes.Default()
	if path == "" {
		return c, nil
	}
	loaded, err := quotes.LoadFile(path, quotes.DefaultLang)
	if err != nil {
		return nil, err
	}
	c.Merge(loaded)
	return c, nil
}

func pickQuote(args []string, author string, src quotes.Source, lang string) (quotes.Quote, error) {
	if len(args) > 0 {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return quotes.Quote{}, errors.New("empty quote")
		}
		return quotes.Quote{Text: text, Author: strings.TrimSpace(author)}, nil
	}
	q, ok := quotes.Pick(src.Quotes(lang), nil)
	if !ok {
		return quotes.Quote{}, errors.New("no quotes available")
	}
	return q, nil
}

func printSettings(w io.Writer, cfg settings.Settings) error {
	masked := cfg
	if masked.APIKey != "" {
		masked.APIKey = maskKey(masked.APIKey)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(masked)
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:3] + "..." + key[len(key)-4:]
}

func printTestResult(w io.Writer, res quotelai.TestResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if res.Success {
		color.New(color.FgGreen).Fprintf(w, "✓ %s\n", res.Message)
		return nil
	}
	color.New(color.FgRed).Fprintf(w, "✗ %s (%s)\n", res.Message, res.Code)
	if res.Details != "" {
		fmt.Fprintf(w, "  %s\n", res.Details)
	}
	return nil
}

func printOriginal(w io.Writer, q quotes.Quote) {
	fmt.Fprintln(w, q.Text)
	if q.Author != "" {
		color.New(color.Faint).Fprintf(w, "  - %s\n", q.Author)
	}
}

func setupLog(w io.Writer, dbg bool, secs ...string) lgr.L {
	logOpts := []lgr.Option{lgr.Out(w), lgr.Err(io.Discard)}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.Msec, lgr.LevelBraces)
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var nonEmpty []string
	for _, s := range secs {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, lgr.Secret(nonEmpty...))
	}
	return lgr.New(logOpts...)
}
