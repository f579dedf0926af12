package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"github.com/orris-inc/modgate/internal/interfaces/cli/moderate"
	"github.com/orris-inc/modgate/internal/interfaces/cli/server"
)

// exitTempFail is EX_TEMPFAIL from sysexits.h.
const exitTempFail = 75

// @title						modgate API
// @version					1.0
// @description				Content moderation gateway for text and images.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "modgate",
		Short: "modgate - content moderation gateway",
		Long:  `modgate scores text and images against moderation categories and returns an approve or reject verdict, with per-client rate limiting.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		moderate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, moderate.ErrRetryable) {
			os.Exit(exitTempFail)
		}
		os.Exit(1)
	}
}
