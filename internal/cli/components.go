package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/factview/internal/evaluate"
	"github.com/spf13/cobra"
)

// componentsCmd represents the components command
var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List the pipeline components the evaluation service offers",
	Long: `Components queries the service for its available claim processors,
retrievers and verifiers. factview always submits with the factool
pipeline; this listing is informational.`,
	Args: cobra.NoArgs,
	RunE: runComponents,
}

func init() {
	rootCmd.AddCommand(componentsCmd)
}

func runComponents(cmd *cobra.Command, args []string) error {
	cfg, err := requireAPI()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	components, err := evaluate.NewClient(cfg, logger).Components(ctx)
	if err != nil {
		return fmt.Errorf("list components: %s", evaluate.FailureMessage(err))
	}

	out := cmd.OutOrStdout()
	for _, group := range []struct {
		title string
		names []string
	}{
		{"Claim processors", components.ClaimProcessors},
		{"Retrievers", components.Retrievers},
		{"Verifiers", components.Verifiers},
	} {
		fmt.Fprintf(out, "%s:\n", group.title)
		if len(group.names) == 0 {
			fmt.Fprintln(out, "  (none)")
			continue
		}
		fmt.Fprintf(out, "  %s\n", strings.Join(group.names, "\n  "))
	}
	return nil
}
