package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/belajar/internal/catalog"
	"github.com/abhisek/belajar/internal/screens/overview"
	"github.com/abhisek/belajar/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return printStats(cmd.Context(), cmd.OutOrStdout(), env)
	},
}

func printStats(ctx context.Context, w io.Writer, env *environment) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st := overview.Compute(env.deps())

	headingColor.Fprintln(w, "Progress")
	ruler(w, 40)
	fmt.Fprintf(w, "%-18s %d\n", "Modules", st.Modules)
	fmt.Fprintf(w, "%-18s %d\n", "Started", st.Started)
	fmt.Fprintf(w, "%-18s %d\n", "Completed", st.Completed)
	fmt.Fprintf(w, "%-18s %s\n", "Average", percentCell(st.Average))
	fmt.Fprintf(w, "%-18s %d\n", "Notes", st.Notes)
	fmt.Fprintf(w, "%-18s %s\n", "Quizzes graded", gradedCount(ctx, env))

	byLevel := lo.GroupBy(env.catalog.All(), func(m catalog.Module) string { return m.Level })
	fmt.Fprintln(w)
	headingColor.Fprintf(w, "%-8s  %7s  %9s  %7s\n", "Level", "Modules", "Completed", "Average")
	ruler(w, 40)
	for _, level := range env.catalog.Levels() {
		mods, ok := byLevel[level]
		if !ok {
			continue
		}
		progress := lo.Map(mods, func(m catalog.Module, _ int) int { return env.tracker.Progress(m.ID) })
		done := lo.CountBy(progress, func(p int) bool { return p >= 100 })
		avg := lo.Sum(progress) / len(progress)
		fmt.Fprintf(w, "%-8s  %7d  %9d  %s\n", level, len(mods), done, "   "+percentCell(avg))
	}
	return nil
}

// gradedCount reads the attempt count from the event log. An unavailable
// log is shown as "-" and never fails the command.
func gradedCount(ctx context.Context, env *environment) string {
	if env.events == nil {
		return "-"
	}
	attempts, err := env.events.QueryAttempts(ctx, store.QueryOpts{})
	if err != nil {
		env.log.Warn("query attempts failed", "error", err)
		return "-"
	}
	return fmt.Sprint(len(attempts))
}
