package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"eino_agentic_chat/internal/config"
	"eino_agentic_chat/internal/core"
	"eino_agentic_chat/internal/llm"
	"eino_agentic_chat/internal/ui"
	"eino_agentic_chat/pkg"
	"eino_agentic_chat/src"
	"eino_agentic_chat/src/logger"
	"eino_agentic_chat/src/tracing"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
)

type flags struct {
	configPath string
	message    string
	provider   string
	model      string
	usecase    string
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "path to the UI option file (overrides UI_CONFIG_PATH)")
	flag.StringVar(&f.message, "message", "", "run one headless cycle with this message and print a JSON report")
	flag.StringVar(&f.provider, "provider", "", "provider for the headless cycle (default: first llm option)")
	flag.StringVar(&f.model, "model", "", "model for the headless cycle (default: first model of the provider)")
	flag.StringVar(&f.usecase, "usecase", "", "use case for the headless cycle (default: first use case)")
	flag.Parse()

	if err := run(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(f flags) error {
	// A missing .env is fine; the environment may already be set.
	envErr := godotenv.Load()

	cfg, err := src.LoadConfig()
	if err != nil {
		return err
	}

	closer, err := logger.InitLogger(cfg.LogConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	if envErr != nil {
		logger.Warn().Err(envErr).Msg("No .env file loaded")
	}

	path := cfg.UIConfigPath
	if f.configPath != "" {
		path = f.configPath
	}
	options, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}

	shutdown := tracing.InitTracing(cfg.TraceEnabled, *logger.GetLogger())
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("Failed to shut down tracing")
		}
	}()

	factory := llm.NewFactory(options.BuildProviderConfigs())
	gate := core.NewGate(factory, core.WithLogger(*logger.GetLogger()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if f.message != "" {
		return runOnce(ctx, os.Stdout, gate, headlessSelections(options, f, os.Getenv), f.message)
	}

	logger.Info().Str("config", path).Msg("Starting chat UI")
	if err := ui.Run(ctx, ui.New(ctx, options, gate), cfg.AltScreen); err != nil {
		logger.Error().Err(err).Msg("Chat UI exited with error")
		return err
	}
	return nil
}

// headlessSelections builds the selection mapping from flags, falling back to
// the first configured option. The credential comes from the provider's
// <PROVIDER>_API_KEY environment variable.
func headlessSelections(options *config.YAMLConfig, f flags, getenv func(string) string) pkg.Selections {
	provider := f.provider
	if provider == "" {
		provider = first(options.LLMOptions())
	}
	model := f.model
	if model == "" {
		model = first(options.ModelOptions(provider))
	}
	usecase := f.usecase
	if usecase == "" {
		usecase = first(options.UsecaseOptions())
	}

	sel := pkg.Selections{}
	if provider != "" {
		sel[pkg.KeySelectedLLM] = provider
		sel[pkg.ModelKey(provider)] = model
		if options.RequiresAPIKey(provider) {
			sel[pkg.CredentialKey(provider)] = getenv(pkg.CredentialKey(provider))
		}
	}
	if usecase != "" {
		sel[pkg.KeySelectedUsecase] = usecase
	}
	return sel
}

// runOnce runs a single gating cycle and writes its report as JSON
func runOnce(ctx context.Context, w io.Writer, gate ui.Runner, selections pkg.Selections, message string) error {
	result := gate.Run(ctx, selections, message)

	out, err := sonic.ConfigStd.MarshalIndent(core.NewReport(selections, result), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(out)); err != nil {
		return err
	}

	if result.Err != nil {
		return result.Err
	}
	return nil
}

func first(opts []string) string {
	if len(opts) == 0 {
		return ""
	}
	return opts[0]
}
