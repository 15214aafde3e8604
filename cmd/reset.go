package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all progress and notes",
	Long:  "Clear all progress and notes. A snapshot is saved first; restore it with `belajar state restore`.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to reset without --yes")
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return resetState(cmd.Context(), cmd.OutOrStdout(), env)
	},
}

func resetState(ctx context.Context, w io.Writer, env *environment) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := env.snapshot(ctx, "reset"); err != nil {
		return err
	}
	env.tracker.Reset(ctx)
	env.log.Info("learner state reset")
	fmt.Fprintln(w, "Progress and notes cleared. A snapshot was saved first.")
	return nil
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
