package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/persist"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
	"github.com/goliatone/go-formstate/pkg/schemaio"
	"github.com/goliatone/go-formstate/pkg/session"
)

func main() {
	schemaPath := flag.String("schema", "", "schema file (JSON or YAML); built-in demo form when empty")
	openapiPath := flag.String("openapi", "", "OpenAPI document to derive the schema from")
	operation := flag.String("operation", "", "operation ID used with -openapi")
	store := flag.String("store", "", "directory used to persist form progress (disabled when empty)")
	key := flag.String("key", persist.DefaultKey, "storage key for persisted progress")
	format := flag.String("format", "json", "output format: json, pretty or form")
	output := flag.String("output", "", "output file (stdout if empty); an extension matching -format is added when missing")
	errorPrefix := flag.String("error-prefix", "! ", "prefix printed before validation messages")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := newLogger(*debug)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	schema, err := loadSchema(ctx, *schemaPath, *openapiPath, *operation)
	if err != nil {
		logger.Fatalw("failed to load schema", "error", err)
	}

	opts := []session.Option{session.WithLogger(logger)}
	if strings.TrimSpace(*store) != "" {
		bridge := persist.NewKVBridge(persist.NewFileBackend(*store), *key, persist.WithLogger(logger))
		opts = append(opts, session.WithBridge(bridge))
	}
	s := session.New(ctx, schema, opts...)

	renderer := tui.New(
		tui.WithOutputFormat(tui.OutputFormat(*format)),
		tui.WithTheme(tui.Theme{ErrorPrefix: *errorPrefix}),
	)
	payload, err := renderer.Run(ctx, s)
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(os.Stderr, "aborted")
		os.Exit(130)
	}
	if err != nil {
		logger.Fatalw("form session failed", "error", err)
	}

	if *output != "" {
		path := outputPath(*output, renderer.ContentType())
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			logger.Fatalw("failed to write output", "path", path, "error", err)
		}
		logger.Debugw("submission written", "path", path, "content_type", renderer.ContentType())
		fmt.Printf("Form submitted, written to %s\n", path)
		return
	}
	fmt.Println(string(payload))
}

func loadSchema(ctx context.Context, schemaPath, openapiPath, operation string) (model.Schema, error) {
	switch {
	case openapiPath != "":
		if operation == "" {
			return model.Schema{}, errors.New("-operation is required with -openapi")
		}
		data, err := os.ReadFile(openapiPath)
		if err != nil {
			return model.Schema{}, fmt.Errorf("read %s: %w", openapiPath, err)
		}
		return schemaio.FromOpenAPI(ctx, data, operation)
	case schemaPath != "":
		return schemaio.LoadFile(schemaPath)
	default:
		return schemaio.Demo(), nil
	}
}

// outputPath appends the extension for contentType when path has none.
func outputPath(path, contentType string) string {
	if filepath.Ext(path) != "" {
		return path
	}
	switch contentType {
	case "application/json":
		return path + ".json"
	case "text/plain":
		return path + ".txt"
	default:
		return path + ".form"
	}
}

func newLogger(debug bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
