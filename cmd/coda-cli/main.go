package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/config"
	"github.com/goliatone/go-coda/pkg/content"
	"github.com/goliatone/go-coda/pkg/kinds"
	"github.com/goliatone/go-coda/pkg/orchestrator"
	"github.com/goliatone/go-coda/pkg/prompt"
	"github.com/goliatone/go-coda/pkg/render"
	"github.com/goliatone/go-coda/pkg/tokens"
)

func main() {
	kindName := flag.String("kind", "feature-card", "component kind to render")
	contentPath := flag.String("content", "", "JSON file with content overrides")
	interactive := flag.Bool("interactive", false, "prompt for every content field")
	color := flag.String("color", "", "decorate the component with a color")
	rendererName := flag.String("renderer", "", "renderer to use (defaults to CODA_RENDERER)")
	output := flag.String("output", "", "output file (stdout if empty)")
	envFile := flag.String("env", ".env", "dotenv file loaded before the environment")
	openapiPath := flag.String("openapi", "", "OpenAPI document whose component schemas become kinds")
	stylesheets := flag.Bool("stylesheets", false, "emit stylesheet links ahead of the component")
	list := flag.Bool("list", false, "list the available kinds and exit")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [flags]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		fmt.Fprintf(out, "\n%s", config.Usage())
	}
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	options, err := buildOptions(ctx, cfg, logger, *openapiPath)
	if err != nil {
		logger.Error("Failed to configure orchestrator", "err", err)
		os.Exit(1)
	}
	orch := orchestrator.New(options...)

	if *list {
		for _, name := range orch.Catalog().List() {
			fmt.Println(name)
		}
		return
	}

	initial, err := readContent(*contentPath)
	if err != nil {
		logger.Error("Failed to read content", "path", *contentPath, "err", err)
		os.Exit(1)
	}

	var driver prompt.Driver
	if *interactive {
		driver = prompt.NewSurveyDriver()
		kind, err := orch.Catalog().Get(*kindName)
		if err != nil {
			logger.Error("Unknown kind", "kind", *kindName, "err", err)
			os.Exit(1)
		}
		kind.Defaults = content.Merge(kind.Defaults, initial)
		answers, err := prompt.Fill(ctx, driver, kind)
		if err != nil {
			logger.Error("Prompt failed", "err", err)
			os.Exit(1)
		}
		initial = content.Merge(initial, answers)
	}

	req := orchestrator.Request{
		Kind:          *kindName,
		Content:       initial,
		Renderer:      strings.TrimSpace(*rendererName),
		RenderOptions: render.RenderOptions{Stylesheets: *stylesheets, Indent: true},
		ThemeName:     cfg.Theme,
	}
	if *color != "" {
		req.Decorators = append(req.Decorators, component.Colored(*color))
	}

	result, err := orch.Render(ctx, req)
	if err != nil {
		logger.Error("Failed to render component", "kind", *kindName, "err", err)
		os.Exit(1)
	}
	if driver != nil {
		if err := prompt.Review(ctx, driver, result.Issues); err != nil {
			logger.Warn("Failed to print diagnostics", "err", err)
		}
	}

	if *output != "" {
		if err := os.WriteFile(*output, result.Output, 0o644); err != nil {
			logger.Error("Failed to write output", "path", *output, "err", err)
			os.Exit(1)
		}
		logger.Info("Component written", "path", *output, "renderer", result.Renderer, "issues", len(result.Issues))
		return
	}
	fmt.Println(string(result.Output))
}

func buildOptions(ctx context.Context, cfg config.Config, logger *slog.Logger, openapiPath string) ([]orchestrator.Option, error) {
	options := []orchestrator.Option{
		orchestrator.WithMode(cfg.ValidationMode()),
		orchestrator.WithLogger(logger),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
	}

	if openapiPath != "" {
		data, err := os.ReadFile(openapiPath)
		if err != nil {
			return nil, fmt.Errorf("read openapi document: %w", err)
		}
		imported, err := kinds.LoadOpenAPI(ctx, data)
		if err != nil {
			return nil, err
		}
		catalog, err := kinds.Defaults()
		if err != nil {
			return nil, err
		}
		if err := catalog.Merge(imported); err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithCatalog(catalog))
	}

	if cfg.KindsDir != "" {
		options = append(options, orchestrator.WithKindsFS(os.DirFS(cfg.KindsDir)))
	}

	if cfg.TokensFile != "" {
		store, err := tokens.LoadFS(os.DirFS(filepath.Dir(cfg.TokensFile)), filepath.Base(cfg.TokensFile))
		if err != nil {
			return nil, err
		}
		options = append(options,
			orchestrator.WithTokens(store),
			orchestrator.WithThemeDefaults(cfg.Theme, ""),
		)
	}
	return options, nil
}

func readContent(path string) (content.Model, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var model content.Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return model.Clone(), nil
}
