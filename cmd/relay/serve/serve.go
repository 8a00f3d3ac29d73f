// Package servecmder provides the serve command that runs the relay server.
package servecmder

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/promptdeck/relay/pkg/chat/provider"
	"github.com/promptdeck/relay/pkg/config"
	"github.com/promptdeck/relay/pkg/logger"
	"github.com/promptdeck/relay/relay"
)

type serveCommander struct {
	listen            string
	openaiUpstream    string
	anthropicUpstream string
	deepseekUpstream  string
	logFile           string
	debug             bool

	cli    *slog.Logger
	logger *zap.Logger
}

const serveLongDesc string = `Run the relay server.

The relay accepts generic chat completion requests on POST /api/chat and
forwards each one to a single upstream provider selected by model name
prefix. Flags, RELAY_* environment variables, and config.toml values are
applied in that order of precedence.

Upstream overrides replace only the scheme and host the relay dials; the
provider endpoint paths stay fixed.`

const serveShortDesc string = "Run the relay server"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}
	flags := config.ServeFlags()
	bound := []string{
		config.FlagListen,
		config.FlagOpenAIUpstream,
		config.FlagAnthropicUpstream,
		config.FlagDeepseekUpstream,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

			configDir, err := cmd.Flags().GetString("config-dir")
			if err != nil {
				return fmt.Errorf("could not get config-dir flag: %v", err)
			}

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(v, cmd, flags, bound)

			return cmder.run(v)
		},
	}

	config.AddStringFlag(cmd, flags, config.FlagListen, &cmder.listen)
	config.AddStringFlag(cmd, flags, config.FlagOpenAIUpstream, &cmder.openaiUpstream)
	config.AddStringFlag(cmd, flags, config.FlagAnthropicUpstream, &cmder.anthropicUpstream)
	config.AddStringFlag(cmd, flags, config.FlagDeepseekUpstream, &cmder.deepseekUpstream)
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also write JSON logs to this file")

	return cmd
}

func (c *serveCommander) run(v *viper.Viper) error {
	cli, cleanup, err := c.newCLILogger()
	if err != nil {
		return err
	}
	defer cleanup()
	c.cli = cli

	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	cfg := relay.Config{
		ListenAddr: v.GetString("server.listen"),
		Upstreams: map[string]string{
			provider.OpenAI:    v.GetString("providers.openai_upstream"),
			provider.Anthropic: v.GetString("providers.anthropic_upstream"),
			provider.Deepseek:  v.GetString("providers.deepseek_upstream"),
		},
	}

	srv, err := relay.New(cfg, c.logger)
	if err != nil {
		return fmt.Errorf("creating relay: %w", err)
	}

	c.cli.Info("starting relay",
		"listen", cfg.ListenAddr,
		"openai_upstream", cfg.Upstreams[provider.OpenAI],
		"anthropic_upstream", cfg.Upstreams[provider.Anthropic],
		"deepseek_upstream", cfg.Upstreams[provider.Deepseek],
	)

	// Channel to capture errors from the server goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- fmt.Errorf("relay error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.cli.Info("received signal, shutting down", "signal", sig.String())
		return srv.Shutdown()
	}
}

// newCLILogger builds the command's slog logger: pretty terminal output,
// optionally fanned out to a JSON log file when --log-file is set.
func (c *serveCommander) newCLILogger() (*slog.Logger, func(), error) {
	pretty := logger.New(logger.WithPretty(true), logger.WithDebug(c.debug))

	if c.logFile == "" {
		return pretty, func() {}, nil
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	fileLogger := logger.New(
		logger.WithJSON(true),
		logger.WithWriter(f),
		logger.WithDebug(c.debug),
	)

	return logger.Multi(pretty, fileLogger), func() { f.Close() }, nil
}
