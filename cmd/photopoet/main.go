package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/gemini-poem-kit/internal/config"
	"github.com/shouni/gemini-poem-kit/internal/server"
	"github.com/shouni/gemini-poem-kit/pkg/domain"
	"github.com/shouni/gemini-poem-kit/pkg/generator"
	"github.com/shouni/gemini-poem-kit/pkg/imgutil"
)

const shutdownTimeout = 10 * time.Second

func printUsage() {
	program := os.Args[0]
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n", program)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  serve      Run the HTTP API")
	fmt.Fprintln(os.Stderr, "  generate   Generate a poem from a single image")
	fmt.Fprintf(os.Stderr, "Use \"%s <command> -h\" for more information about a command.\n", program)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "generate":
		err = runGenerate(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		log.Error(err)
		if errors.Is(err, domain.ErrValidation) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// setupLogger は charmbracelet/log をデフォルトにし、pkg 側の slog も同じ出力に流します。
func setupLogger(level string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, falling back to info", "level", level)
	}
	log.SetDefault(logger)
	slog.SetDefault(slog.New(logger))
}

func loadConfig(fs *flag.FlagSet, args []string) (config.Config, error) {
	configPath := fs.String("config", "config/config.yaml", "path to the YAML config file")
	envPath := fs.String("env", ".env", "path to an optional .env file")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		return config.Config{}, err
	}
	setupLogger(cfg.Log.Level)
	return cfg, nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	api, err := server.NewApi(gen, cfg)
	if err != nil {
		return err
	}

	logger := log.With("component", "main")
	logger.Info("starting", "backend", gen.Backend().Name(), "model", cfg.Model.Name)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(api.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return api.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	image := fs.String("image", "", "image source: data URI, local file, http(s) URL or gs:// URI")
	style := fs.String("style", "", "free-form style preferences")
	length := fs.String("length", "", "poem length: short, medium or long")
	tone := fs.String("tone", "", "poem tone, e.g. melancholic")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	directive, err := directiveFromFlags(*style, *length, *tone, cfg.DefaultStyle())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := imgutil.NewLoader(nil, nil, cfg.UploadPolicy())
	payload, err := loader.Load(ctx, *image)
	if err != nil {
		return err
	}

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}

	out := gen.Generate(ctx, payload, directive)
	if !out.OK() {
		return out.Err()
	}
	fmt.Println(out.Poem)
	return nil
}

// directiveFromFlags は -style / -length / -tone のうち指定された1つを指示に変換します。
// どれも指定されなければデフォルトスタイルを使います。
func directiveFromFlags(style, length, tone, defaultStyle string) (domain.StyleDirective, error) {
	var set []string
	if style != "" {
		set = append(set, "-style")
	}
	if length != "" {
		set = append(set, "-length")
	}
	if tone != "" {
		set = append(set, "-tone")
	}
	if len(set) > 1 {
		return nil, fmt.Errorf("%w: only one of %s may be given", domain.ErrValidation, strings.Join(set, ", "))
	}

	switch {
	case style != "":
		return domain.FreeformStyle{Text: style}, nil
	case length != "":
		l, err := domain.ParsePoemLength(length)
		if err != nil {
			return nil, err
		}
		return domain.LengthDirective{Length: l}, nil
	case tone != "":
		return domain.ToneDirective{Tone: tone}, nil
	default:
		return domain.FreeformStyle{Text: defaultStyle}, nil
	}
}

func newGenerator(ctx context.Context, cfg config.Config) (*generator.PoemGenerator, error) {
	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	return generator.NewPoemGenerator(backend, generator.WithTimeout(timeout))
}
