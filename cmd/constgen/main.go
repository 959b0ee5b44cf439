// cmd/constgen/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	hlog "github.com/sghaida/hellogen/internal/log"
)

// This binary is a code-generation tool.
//
// It reads a YAML or HCL config describing a project, its messages, feature
// flags and numeric constants, and writes the constants bundle as Go source
// (or as a C header).
//
// Key behaviors:
// - Config format is picked by extension (.yaml/.yml or .hcl)
// - Unknown keys are rejected; all validation problems are reported at once
// - The Go package defaults to the output directory name
// - The header records the config path and its SHA-256
// - Output is written atomically (pending file + fsync + rename)
// - -watch keeps regenerating when the config changes

const usageLine = "usage: constgen -config <file.yaml|file.hcl> -out <file> [-package name] [-lang go|c] [-watch]"

// options are the parsed command-line flags.
type options struct {
	configPath string
	outPath    string
	pkg        string
	lang       string
	watch      bool
	debounce   time.Duration
}

// errUsage marks command-line mistakes (exit code 2).
var errUsage = errors.New("usage error")

// parseFlags parses args into options.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	flags := flag.NewFlagSet("constgen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	flags.StringVar(&opts.configPath, "config", "", "path to config .yaml/.yml/.hcl")
	flags.StringVar(&opts.outPath, "out", "", "output file path")
	flags.StringVar(&opts.pkg, "package", "", "Go package name (default: output directory name)")
	flags.StringVar(&opts.lang, "lang", langGo, "output language: go or c")
	flags.BoolVar(&opts.watch, "watch", false, "regenerate whenever the config changes")
	flags.DurationVar(&opts.debounce, "debounce", 200*time.Millisecond, "delay before regenerating in -watch mode")

	if err := flags.Parse(args); err != nil {
		return options{}, fmt.Errorf("%w: %w", errUsage, err)
	}

	if strings.TrimSpace(opts.configPath) == "" || strings.TrimSpace(opts.outPath) == "" {
		_, _ = fmt.Fprintln(stderr, usageLine)
		return options{}, fmt.Errorf("%w: -config and -out are required", errUsage)
	}
	if opts.lang != langGo && opts.lang != langC {
		return options{}, fmt.Errorf("%w: -lang must be %q or %q, got %q", errUsage, langGo, langC, opts.lang)
	}
	if flags.NArg() > 0 {
		return options{}, fmt.Errorf("%w: unexpected arguments %v", errUsage, flags.Args())
	}

	opts.outPath = filepath.Clean(opts.outPath)
	return opts, nil
}

// defaultPackage returns the base name of the directory that will hold outPath.
func defaultPackage(outPath string) (string, error) {
	abs, err := filepath.Abs(outPath)
	if err != nil {
		return "", err
	}
	return filepath.Base(filepath.Dir(abs)), nil
}

// generate runs one load -> validate -> render -> write cycle.
func generate(logger zerolog.Logger, opts options) error {
	raw, err := os.ReadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	cfg, err := loadConfig(opts.configPath, raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	pkg := opts.pkg
	if pkg == "" && opts.lang == langGo {
		if pkg, err = defaultPackage(opts.outPath); err != nil {
			return fmt.Errorf("infer package: %w", err)
		}
	}

	out, err := render(opts.lang, pkg, filepath.ToSlash(opts.configPath), raw, cfg)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := writeFileAtomic(logger, opts.outPath, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info().
		Str("event", "constgen.generated").
		Str("config", opts.configPath).
		Str("out", opts.outPath).
		Str("lang", opts.lang).
		Int("features", len(cfg.Features)).
		Msg("generated")
	return nil
}

// run executes the generator and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	logger := hlog.New(hlog.Config{Output: stderr, Service: "constgen"})

	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "constgen: %v\n", err)
		return 2
	}

	if err := generate(logger, opts); err != nil {
		_, _ = fmt.Fprintf(stderr, "constgen: %v\n", err)
		return 1
	}

	if !opts.watch {
		return 0
	}

	regenerate := func() error { return generate(logger, opts) }
	if err := watchConfig(ctx, logger, opts.configPath, opts.debounce, regenerate); err != nil {
		_, _ = fmt.Fprintf(stderr, "constgen: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
