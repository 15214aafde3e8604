package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/belajar/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List graded quiz attempts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		module, _ := cmd.Flags().GetString("module")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return printHistory(cmd.Context(), cmd.OutOrStdout(), env, store.QueryOpts{Limit: limit, ModuleID: module})
	},
}

func printHistory(ctx context.Context, w io.Writer, env *environment, opts store.QueryOpts) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := env.requireEvents(); err != nil {
		return err
	}
	attempts, err := env.events.QueryAttempts(ctx, opts)
	if err != nil {
		return fmt.Errorf("query attempts: %w", err)
	}
	if len(attempts) == 0 {
		fmt.Fprintln(w, "No quizzes graded yet.")
		return nil
	}

	headingColor.Fprintf(w, "%-16s  %-34s  %7s  %4s  %8s\n", "Time", "Module", "Score", "Pct", "Progress")
	ruler(w, 78)
	for _, a := range attempts {
		title := a.ModuleID
		if m, ok := env.catalog.Get(a.ModuleID); ok {
			title = m.Title
		}
		fmt.Fprintf(w, "%-16s  %-34s  %7s  %s  %s\n",
			a.Timestamp.Local().Format("2006-01-02 15:04"),
			truncate(title, 34),
			fmt.Sprintf("%d/%d", a.Correct, a.Total),
			percentCell(a.Percent),
			"    "+percentCell(a.ProgressAfter),
		)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().StringP("module", "m", "", "Only attempts for this module id")
}
