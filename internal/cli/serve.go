package cli

import (
	"github.com/ppiankov/factview/internal/evaluate"
	"github.com/ppiankov/factview/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve fact-check sessions over HTTP",
	Long: `Serve exposes session-scoped fact-check views as JSON:

  POST /api/sessions                              create a session
  POST /api/sessions/:id/submissions {"text":…}   submit a sample
  GET  /api/sessions/:id                          current view
  GET  /api/sessions/:id/claims/:claim/citations  all citations of a claim

Sessions live in memory and expire after server.session_ttl of inactivity.

Example:
  factview serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default: server.addr)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := requireAPI()
	if err != nil {
		return err
	}

	client := evaluate.NewClient(cfg, logger)
	return server.New(cfg, client, logger).Run(cmd.Context())
}
