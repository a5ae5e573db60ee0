package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vk/portgraph/internal/app"
	"github.com/vk/portgraph/internal/codec"
)

// EnvPrefix prefixes every environment variable the CLI reads, e.g.
// PORTGRAPH_LOG_LEVEL for --log-level.
const EnvPrefix = "PORTGRAPH"

var version = "dev"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var config *app.Config
	cmd := newRootCommand(func(c *app.Config) { config = c })
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	// Help, version and a missing network path all end here without a config.
	if config == nil {
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func newRootCommand(done func(*app.Config)) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "portgraph [flags] [NETWORK_PATH...]",
		Short: "Wire a dataflow network and draw its connection graph",
		Long: `portgraph reads a network of state and event ports from HCL files,
wires every connect block through its initiating endpoint and exports the
resulting connection graph as DOT, YAML or JSON.

Every flag can also be set through the environment (PORTGRAPH_LOG_LEVEL for
--log-level), a .env file or a YAML config file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadSettings(cmd, v); err != nil {
				return err
			}

			paths := args
			if len(paths) == 0 {
				paths = v.GetStringSlice("network")
			}
			if len(paths) == 0 {
				slog.Debug("No network path provided, printing usage and exiting.")
				return cmd.Help()
			}

			config, err := configFrom(v, paths)
			if err != nil {
				return err
			}
			done(config)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "Path to a YAML config file.")
	flags.String("env-file", ".env", "Path to a .env file; ignored when missing.")
	flags.StringSliceP("network", "n", nil, "Network file or directory (repeatable); positional arguments take precedence.")
	flags.StringP("format", "f", "dot", fmt.Sprintf("Export format. Options: %s.", strings.Join(codec.Formats(), ", ")))
	flags.StringP("output", "o", "", "Write the export to this file instead of stdout.")
	flags.Bool("no-fire", false, "Wire the network without firing its fire blocks.")
	flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.Int("serve-port", 0, "Serve /graph and /health on this port until interrupted. 0 is disabled.")
	flags.String("publish-url", "", "socket.io endpoint the graph is published to.")
	flags.String("publish-namespace", "/", "socket.io namespace to publish on.")
	flags.Bool("publish-insecure", false, "Skip TLS certificate verification when publishing.")
	flags.Duration("publish-timeout", 0, "How long to wait for the publish connection (0 uses the default).")

	return cmd
}

// loadSettings layers flags over environment over config file.
func loadSettings(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	if envFile != "" {
		// Existing environment variables win over the file.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return usageError("failed to load env file %s: %v", envFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return usageError("failed to read config file %s: %v", cfgFile, err)
		}
		slog.Debug("Config file loaded.", "path", v.ConfigFileUsed())
	}
	return nil
}

func configFrom(v *viper.Viper, paths []string) (*app.Config, error) {
	logFormat := strings.ToLower(v.GetString("log-format"))
	if logFormat != "text" && logFormat != "json" {
		return nil, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(v.GetString("log-level"))
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		NetworkPaths:     paths,
		Format:           strings.ToLower(v.GetString("format")),
		OutputPath:       v.GetString("output"),
		NoFire:           v.GetBool("no-fire"),
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		ServePort:        v.GetInt("serve-port"),
		PublishURL:       v.GetString("publish-url"),
		PublishNamespace: v.GetString("publish-namespace"),
		PublishInsecure:  v.GetBool("publish-insecure"),
		PublishTimeout:   v.GetDuration("publish-timeout"),
	})
	if err != nil {
		return nil, usageError("%s", err.Error())
	}
	return config, nil
}
