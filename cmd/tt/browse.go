package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/amonks/tasktree/internal/browse"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the task forest interactively",
	Long: `Browse the task forest interactively.

Selection and expanded titles last for the session. Locking a title and
choosing the working task are saved to the task file.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return browse.Run(ctx, store, browse.Options{
		Threshold: app.threshold,
		Styles:    app.styles,
		Mutate:    mutateStore,
		Reload:    loadStore,
	})
}
