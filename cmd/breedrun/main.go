// Command breedrun evolves OneMax bit vectors with breeding trees read
// from a parameter file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/errors"
	"github.com/kbukum/breedkit/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// options are the flags shared by every subcommand.
type options struct {
	configFile   string
	envFile      string
	set          []string
	logLevel     string
	logFormat    string
	otlpEndpoint string
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "breedrun",
		Short:         "Run breeding pipelines over bit-vector populations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&o.configFile, "config", "c", "", "parameter file (default ./breed.yml or ./config/breed.yml)")
	flags.StringVar(&o.envFile, "env", "", ".env file (default ./.env)")
	flags.StringArrayVar(&o.set, "set", nil, "override a parameter, key=value (repeatable)")
	flags.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&o.logFormat, "log-format", logger.FormatConsole, "log format (console, json)")

	root.AddCommand(newRunCmd(o))
	root.AddCommand(newDescribeCmd(o))
	root.AddCommand(newVersionCmd())
	return root
}

// params loads the parameter file and applies --set overrides on top.
func (o *options) params() (*config.Parameters, error) {
	overrides := make(map[string]any, len(o.set))
	for _, kv := range o.set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, errors.InvalidParameter(kv, "--set expects key=value")
		}
		overrides[key] = value
	}
	return config.Load(
		config.WithConfigFile(o.configFile),
		config.WithEnvFile(o.envFile),
		config.WithOverrides(overrides),
	)
}

func (o *options) logger(w io.Writer) (*logger.Logger, error) {
	cfg := logger.Config{Level: o.logLevel, Format: o.logFormat, NoColor: true}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.NewWithWriter(&cfg, w)
	logger.SetGlobalLogger(log)
	for _, component := range []string{"pipeline", "breeder"} {
		logger.Register(component, log.WithComponent(component))
	}
	return log, nil
}
