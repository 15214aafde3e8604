package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/itchyny/json2yaml"
	"github.com/spf13/cobra"

	"github.com/abhisek/belajar/internal/store"
)

var importStateCmd = &cobra.Command{
	Use:   "import-state <file>",
	Short: "Merge progress and notes exported from the browser version",
	Long: `Merge a browser export of the learner state into the current state.
Progress keeps the higher value per module; imported notes replace existing
ones. A snapshot is saved first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return importState(cmd.Context(), cmd.OutOrStdout(), env, data)
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Export, snapshot and restore learner state",
}

var stateExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the learner state as JSON or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return exportState(cmd.OutOrStdout(), env, asYAML)
	},
}

var stateSnapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List saved snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return listSnapshots(cmd.Context(), cmd.OutOrStdout(), env, limit)
	},
}

var stateRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Replace the learner state with a snapshot (latest by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid snapshot id %q: %w", args[0], err)
			}
			id = n
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return restoreSnapshot(cmd.Context(), cmd.OutOrStdout(), env, id)
	},
}

func importState(ctx context.Context, w io.Writer, env *environment, data []byte) error {
	if ctx == nil {
		ctx = context.Background()
	}
	imported, err := store.ParseLegacyState(data)
	if err != nil {
		return fmt.Errorf("import state: %w", err)
	}
	if err := env.snapshot(ctx, "import"); err != nil {
		return err
	}
	env.tracker.Merge(ctx, imported)
	env.log.Info("state imported", "progress", len(imported.Progress), "notes", len(imported.Notes))
	fmt.Fprintf(w, "Imported progress for %d modules and %d notes.\n", len(imported.Progress), len(imported.Notes))
	return nil
}

func exportState(w io.Writer, env *environment, asYAML bool) error {
	data, err := json.MarshalIndent(env.tracker.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if asYAML {
		return json2yaml.Convert(w, bytes.NewReader(data))
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func listSnapshots(ctx context.Context, w io.Writer, env *environment, limit int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if env.snapshots == nil {
		return fmt.Errorf("database %s is unavailable", env.cfg.DBPath)
	}
	snaps, err := env.snapshots.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if len(snaps) == 0 {
		fmt.Fprintln(w, "No snapshots yet.")
		return nil
	}

	headingColor.Fprintf(w, "%-5s  %-19s  %-8s  %7s  %5s\n", "ID", "Timestamp", "Reason", "Modules", "Notes")
	ruler(w, 52)
	for _, s := range snaps {
		fmt.Fprintf(w, "%-5d  %-19s  %-8s  %7d  %5d\n",
			s.ID,
			s.Timestamp.Local().Format("2006-01-02 15:04:05"),
			s.Reason,
			len(s.Data.Progress),
			len(s.Data.Notes),
		)
	}
	return nil
}

// restoreSnapshot replaces the state with snapshot id, or the latest one
// when id is zero. The current state is snapshotted first.
func restoreSnapshot(ctx context.Context, w io.Writer, env *environment, id int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if env.snapshots == nil {
		return fmt.Errorf("database %s is unavailable", env.cfg.DBPath)
	}
	snaps, err := env.snapshots.List(ctx, 0)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}

	var target *store.Snapshot
	for i := range snaps {
		if id == 0 || snaps[i].ID == id {
			target = &snaps[i]
			break
		}
	}
	if target == nil {
		if id == 0 {
			return fmt.Errorf("no snapshots to restore")
		}
		return fmt.Errorf("snapshot %d not found", id)
	}

	if err := env.snapshot(ctx, "restore"); err != nil {
		return err
	}
	env.tracker.Reset(ctx)
	env.tracker.Merge(ctx, target.Data)
	env.log.Info("snapshot restored", "id", target.ID)
	fmt.Fprintf(w, "Restored snapshot %d (%s, %s).\n",
		target.ID, target.Reason, target.Timestamp.Local().Format("2006-01-02 15:04"))
	return nil
}

func init() {
	stateExportCmd.Flags().Bool("yaml", false, "Print YAML instead of JSON")
	stateSnapshotsCmd.Flags().IntP("limit", "n", 20, "Number of snapshots to show")

	stateCmd.AddCommand(stateExportCmd)
	stateCmd.AddCommand(stateSnapshotsCmd)
	stateCmd.AddCommand(stateRestoreCmd)
}
