package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"textgen/internal/config"
)

// Options are the command-line flags. Flags that were not set leave the
// config file (or the defaults) in charge.
type Options struct {
	ConfigPath  string
	Host        string
	Port        int
	ModelPath   string
	Device      string
	LogLevel    string
	LogFormat   string
	CORSOrigins string
}

// Main runs the CLI with os.Args and returns a process exit code.
func Main() int { return MainWithArgs(os.Args[1:]) }

// MainWithArgs runs the CLI with the given args. 0 on success, 1 on error.
func MainWithArgs(args []string) int {
	root := buildRootCmdWith(&Options{}, os.Stdout, os.Stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// buildRootCmdWith constructs the command tree. serve is the default command.
func buildRootCmdWith(opts *Options, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "textgen",
		Short:         "HTTP front end for causal language model text generation",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", envStr("TEXTGEN_CONFIG", ""), "Config file (.yaml|.yml|.json|.toml), defaults TEXTGEN_CONFIG")
	root.PersistentFlags().StringVar(&opts.ModelPath, "model-path", config.DefaultModelPath, "GGUF model file, or a directory holding exactly one")
	root.PersistentFlags().StringVar(&opts.Device, "device", config.DefaultDevice, "Compute device: auto|cpu|cuda|metal")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "Log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&opts.LogFormat, "log-format", config.DefaultLogFormat, "Log format: console|json")

	serveCmd := &cobra.Command{
		Use:     "serve",
		Short:   "Load the model and serve the HTTP API",
		Example: "  textgen serve --model-path ~/models/llm --port 8000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, stderr)
		},
	}
	addServeFlags(serveCmd, opts)
	// Running bare `textgen` serves as well.
	addServeFlags(root, opts)
	root.RunE = serveCmd.RunE

	deviceCmd := &cobra.Command{
		Use:   "device",
		Short: "Print the detected compute device as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return printDevice(cmd.OutOrStdout(), cfg)
		},
	}

	root.AddCommand(serveCmd, deviceCmd)
	return root
}

func addServeFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVar(&opts.Host, "host", config.DefaultHost, "Listen host")
	cmd.Flags().IntVar(&opts.Port, "port", config.DefaultPort, "Listen port")
	cmd.Flags().StringVar(&opts.CORSOrigins, "cors-origins", envStr("TEXTGEN_CORS_ORIGINS", ""), "Comma-separated allowed CORS origins; enables CORS when set")
}

func runServe(cmd *cobra.Command, opts *Options, stderr io.Writer) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	lg := newLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := serve(ctx, cfg, lg); err != nil {
		lg.Error().Err(err).Msg("textgen stopped")
		return err
	}
	return nil
}

// resolveConfig layers defaults, the config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command, opts *Options) (config.Config, error) {
	var cfg config.Config
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", opts.ConfigPath, err)
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	set := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	if set("host") {
		cfg.Host = opts.Host
	}
	if set("port") {
		cfg.Port = opts.Port
	}
	if set("model-path") {
		cfg.ModelPath = opts.ModelPath
	}
	if set("device") {
		cfg.Device = opts.Device
	}
	if set("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if set("log-format") {
		cfg.LogFormat = opts.LogFormat
	}
	if origins := splitCSV(opts.CORSOrigins); len(origins) > 0 {
		cfg.CORSEnabled = true
		cfg.CORSAllowedOrigins = origins
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
