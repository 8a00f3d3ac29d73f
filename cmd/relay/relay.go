// Package relaycmder provides the root relay command.
package relaycmder

import (
	"fmt"

	"github.com/spf13/cobra"

	configcmder "github.com/promptdeck/relay/cmd/relay/config"
	servecmder "github.com/promptdeck/relay/cmd/relay/serve"
	"github.com/promptdeck/relay/pkg/utils"
)

const relayLongDesc string = `Relay forwards generic chat completion requests to upstream LLM providers.

A single POST /api/chat endpoint accepts the browser form's request shape
and routes it by model name: claude-* models to Anthropic, deepseek-* models
to Deepseek, and everything else to the OpenAI-compatible endpoint.

Run the server with:
  relay serve`

const relayShortDesc string = "Relay - chat completion provider dispatch"

func NewRelayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "relay",
		Short:   relayShortDesc,
		Long:    relayLongDesc,
		Version: fmt.Sprintf("%s (%s, built %s)", utils.Version, utils.Sha, utils.Buildtime),
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .relay/ config directory")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())

	return cmd
}
