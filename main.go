package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mcncl/envflat/internal/config"
	"github.com/mcncl/envflat/internal/errors"
	"github.com/mcncl/envflat/internal/fetcher"
	"github.com/mcncl/envflat/internal/flattener"
	"github.com/mcncl/envflat/internal/logging"
	"github.com/mcncl/envflat/internal/sink"
)

// CLI defines the command-line interface
var CLI struct {
	URL     string `help:"URL of the JSON document to fetch. Falls back to INPUT_URL." short:"u"`
	Style   string `help:"Key naming style: snake, camel or dot. Falls back to INPUT_STYLE." short:"s"`
	Token   string `help:"Bearer token sent with the request. Falls back to INPUT_TOKEN."`
	EnvFile string `help:"File the KEY=VALUE lines are appended to. Falls back to GITHUB_ENV." short:"e" name:"env-file"`
	Config  string `help:"Path to a YAML config file." short:"c" type:"path"`
	Debug   bool   `help:"Enable debug logging." short:"d"`
	Version bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug bool
	// Environ replaces the process environment when non-nil.
	Environ map[string]string
	Logger  *zap.Logger
	// Level is raised to DEBUG when the runner asks for debug output.
	Level *zap.AtomicLevel
	// Client is the HTTP client used for the fetch. A default one is built when nil.
	Client *resty.Client
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("envflat"),
		kong.Description("Fetch a JSON document and export it as flattened KEY=VALUE environment variables"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		parser.FatalIfErrorf(err)
	}

	if CLI.Version {
		fmt.Printf("envflat version %s\n", Version)
		return
	}

	level := logging.NewLevel(CLI.Debug)
	logger := logging.New(level)
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(&Context{Debug: CLI.Debug, Logger: logger, Level: &level}); err != nil {
		logger.Error(errors.UserFriendlyError(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	logger := ctx.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// 1. Resolve configuration
	cfg, err := config.Load(&config.CLIOverrides{
		ConfigFile: CLI.Config,
		URL:        CLI.URL,
		Style:      CLI.Style,
		Token:      CLI.Token,
		EnvFile:    CLI.EnvFile,
		Debug:      ctx.Debug,
	}, ctx.Environ)
	if err != nil {
		return err
	}
	if cfg.Debug && ctx.Level != nil {
		ctx.Level.SetLevel(zap.DebugLevel)
	}
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}
	logger.Debug("Resolved configuration", zap.String("style", string(cfg.Style)), zap.Bool("token", cfg.Token != ""))

	client := ctx.Client
	if client == nil {
		client = fetcher.NewClient(logger)
	}

	// 2. Fetch and parse
	logger.Info("Fetching env.json from ***")
	value, err := fetcher.New(client).FetchJSON(context.Background(), cfg.URL, cfg.Token)
	if err != nil {
		return err
	}
	logger.Info("Validating JSON format")

	// 3. Flatten
	logger.Info("Flattening", zap.String("style", string(cfg.Style)))
	pairs := flattener.Flatten(value, cfg.Style)

	// 4. Append to the env file
	writer, err := sink.New(cfg.EnvFile)
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		logger.Info("Setting env", zap.String("key", pair.Key))
	}
	if err := writer.Append(pairs); err != nil {
		return err
	}

	logger.Info("Done", zap.Int("count", len(pairs)))
	return nil
}
