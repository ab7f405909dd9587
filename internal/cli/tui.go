package cli

import (
	"github.com/ppiankov/factview/internal/evaluate"
	"github.com/ppiankov/factview/internal/present"
	"github.com/ppiankov/factview/internal/session"
	"github.com/ppiankov/factview/internal/tui"
	"github.com/spf13/cobra"
)

// tuiCmd represents the interactive command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Fact-check interactively in the terminal",
	Long: `Tui opens an interactive screen: type a statement, press enter, and
browse the verdict. Use tab to move between the input and the results,
up/down to select a claim, c to show all of its citations, esc to close
them and ctrl+c to quit.

Logs go to --log-file, or factview.log in the temp directory.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := requireAPI()
	if err != nil {
		return err
	}

	controller := session.NewController(evaluate.NewClient(cfg, logger), logger)
	return tui.Run(cmd.Context(), controller, present.NewBuilder(cfg.Citations.Cap), tui.Options{Logger: logger})
}
