package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"inheritance-engine/internal/config"
	"inheritance-engine/internal/engine"
	"inheritance-engine/internal/handler"
	"inheritance-engine/internal/model"
	"inheritance-engine/internal/server"
)

func main() {
	cmd := &cli.Command{
		Name:  "inheritance-engine",
		Usage: "Statutory and reserved inheritance share calculator",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API",
				Action: serve,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "config",
						Aliases:     []string{"c"},
						Usage:       "Path to config file",
						DefaultText: "config/config.yaml",
						Value:       "config/config.yaml",
						Sources:     cli.EnvVars("APP_CONFIG_FILE"),
					},
				},
			},
			{
				Name:   "calculate",
				Usage:  "Calculate shares for a heir list and print the result",
				Action: calculate,
				Flags:  []cli.Flag{inputFlag()},
			},
			{
				Name:   "validate",
				Usage:  "Validate a heir list; exits with status 2 when problems are found",
				Action: validate,
				Flags:  []cli.Flag{inputFlag()},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Path to a JSON request with decedent and heirs (- for stdin)",
		Value:   "-",
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewDefault()
	if err := config.LoadOrDefault(cmd.String("config"), cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg.App, os.Stdout)
	slog.SetDefault(logger)
	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.HTTP.Address()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.HTTP, handler.New(logger).Handle)
	return server.Run(ctx, srv, cfg.HTTP.Address(), logger)
}

func calculate(_ context.Context, cmd *cli.Command) error {
	req, err := readRequest(cmd.String("input"))
	if err != nil {
		return err
	}
	resp := engine.Process(req)
	if err := writeIndented(os.Stdout, resp); err != nil {
		return err
	}
	if resp.CalculationMetadata.CalculationOutcome == model.OutcomeFailure {
		return cli.Exit("", 1)
	}
	return nil
}

func validate(_ context.Context, cmd *cli.Command) error {
	req, err := readRequest(cmd.String("input"))
	if err != nil {
		return err
	}
	resp := engine.Validate(req)
	if err := writeIndented(os.Stdout, resp); err != nil {
		return err
	}
	if !resp.Valid {
		return cli.Exit("", 2)
	}
	return nil
}

func readRequest(path string) (*model.CalculationRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return decodeRequest(data)
}

func decodeRequest(data []byte) (*model.CalculationRequest, error) {
	var req model.CalculationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return &req, nil
}

func writeIndented(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// newLogger builds the process logger without installing it globally.
func newLogger(cfg config.AppConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == config.LogFormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
