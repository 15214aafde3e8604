package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/belajar/internal/catalog"
)

var modulesCmd = &cobra.Command{
	Use:     "modules",
	Aliases: []string{"ls"},
	Short:   "List modules, optionally filtered by text and level",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		level, _ := cmd.Flags().GetString("level")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return listModules(cmd.OutOrStdout(), env, query, level)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return exportCatalog(cmd.OutOrStdout(), env, out)
	},
}

func listModules(w io.Writer, env *environment, query, level string) error {
	if level == "" {
		level = catalog.LevelAll
	}
	levels := env.catalog.Levels()
	if level != catalog.LevelAll && !lo.Contains(levels, level) {
		return fmt.Errorf("unknown level %q (have: %s)", level, strings.Join(levels, ", "))
	}

	mods := env.catalog.Search(query, level)
	if len(mods) == 0 {
		fmt.Fprintln(w, "No modules match.")
		return nil
	}

	headingColor.Fprintf(w, "%-24s  %-5s  %-34s  %4s  %5s  %4s  %s\n",
		"ID", "Level", "Title", "Quiz", "Cards", "Done", "Note")
	ruler(w, 92)
	for _, m := range mods {
		note := ""
		if env.tracker.Note(m.ID) != "" {
			note = "✎"
		}
		fmt.Fprintf(w, "%-24s  %-5s  %-34s  %4d  %5d  %s  %s\n",
			truncate(m.ID, 24),
			m.Level,
			truncate(m.Title, 34),
			len(m.Quiz),
			len(m.Flashcards),
			percentCell(env.tracker.Progress(m.ID)),
			note,
		)
	}
	ruler(w, 92)
	fmt.Fprintf(w, "%d of %d modules\n", len(mods), env.catalog.Len())
	return nil
}

// exportCatalog writes the catalog to path, or to w when path is empty.
func exportCatalog(w io.Writer, env *environment, path string) error {
	mods := env.catalog.All()
	if path != "" {
		if err := catalog.Write(path, mods); err != nil {
			return fmt.Errorf("export catalog: %w", err)
		}
		env.log.Info("catalog exported", "path", path, "modules", len(mods))
		fmt.Fprintf(w, "Exported %d modules to %s\n", len(mods), path)
		return nil
	}

	data, err := catalog.Encode(mods)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func init() {
	modulesCmd.Flags().StringP("query", "q", "", "Text to match in titles and descriptions")
	modulesCmd.Flags().StringP("level", "l", catalog.LevelAll, "Level to show (SMP, SMA, SMK, ...)")

	exportCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")
}
