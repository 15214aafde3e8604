package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/belajar/internal/catalog"
)

var notesCmd = &cobra.Command{
	Use:   "notes <id>",
	Short: "Show or change the note kept for a module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		w := cmd.OutOrStdout()
		switch {
		case cmd.Flags().Changed("set"):
			text, _ := cmd.Flags().GetString("set")
			return setNote(cmd.Context(), w, env, args[0], text)
		case cmd.Flags().Changed("clear"):
			return setNote(cmd.Context(), w, env, args[0], "")
		}
		return printNote(w, env, args[0])
	},
}

func printNote(w io.Writer, env *environment, id string) error {
	if _, ok := env.catalog.Get(id); !ok {
		warnf(w, "module %q is not in the catalog", id)
	}
	note := env.tracker.Note(id)
	if note == "" {
		dimColor.Fprintln(w, "(no note)")
		return nil
	}
	fmt.Fprintln(w, note)
	return nil
}

func setNote(ctx context.Context, w io.Writer, env *environment, id, text string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := env.catalog.Get(id); !ok {
		return fmt.Errorf("module %q: %w", id, catalog.ErrNotFound)
	}
	env.tracker.SetNote(ctx, id, text)
	if text == "" {
		fmt.Fprintf(w, "Cleared note for %s\n", id)
		return nil
	}
	fmt.Fprintf(w, "Saved note for %s\n", id)
	return nil
}

func init() {
	notesCmd.Flags().String("set", "", "Replace the note with this text")
	notesCmd.Flags().Bool("clear", false, "Remove the note")
}
