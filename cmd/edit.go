package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/belajar/internal/catalog"
	"github.com/abhisek/belajar/internal/editor"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a module and write the catalog file",
	Long: `Apply field values and JSON files to a module through the same checks
the editor screen uses, then write the whole catalog to --out or --catalog.
Flashcards and quiz files hold JSON arrays in the catalog's item shape.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		out, _ := cmd.Flags().GetString("out")
		target, err := catalogTarget(env, out)
		if err != nil {
			return err
		}

		d, err := draftFor(env, args[0], cmd)
		if err != nil {
			return err
		}
		return saveDraft(cmd.OutOrStdout(), env, d, target)
	},
}

// draftFor starts from the module's current values, or a fresh draft with
// --new, and applies every flag the user set.
func draftFor(env *environment, id string, cmd *cobra.Command) (editor.Draft, error) {
	flags := cmd.Flags()
	var d editor.Draft
	if isNew, _ := flags.GetBool("new"); isNew {
		level, _ := flags.GetString("level")
		d = editor.NewModuleDraft(level)
		d.ID = id
	} else {
		m, ok := env.catalog.Get(id)
		if !ok {
			return editor.Draft{}, fmt.Errorf("module %q: %w", id, catalog.ErrNotFound)
		}
		var err error
		if d, err = editor.NewDraft(m); err != nil {
			return editor.Draft{}, err
		}
	}

	fields := map[string]*string{
		"title":       &d.Title,
		"level":       &d.Level,
		"description": &d.Description,
		"video":       &d.VideoURL,
	}
	for name, dst := range fields {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	files := map[string]*string{
		"content":    &d.Content,
		"flashcards": &d.Flashcards,
		"quiz":       &d.Quiz,
	}
	for name, dst := range files {
		if !flags.Changed(name) {
			continue
		}
		path, _ := flags.GetString(name)
		data, err := os.ReadFile(path)
		if err != nil {
			return editor.Draft{}, fmt.Errorf("read --%s file: %w", name, err)
		}
		*dst = string(data)
	}
	return d, nil
}

// catalogTarget picks the file edits are written to. A directory catalog
// can't be rewritten in place, so it needs --out.
func catalogTarget(env *environment, out string) (string, error) {
	if out != "" {
		return out, nil
	}
	path := env.cfg.CatalogPath
	if path == "" {
		return "", fmt.Errorf("no catalog file to write: pass --catalog <file.yaml> or --out")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "", fmt.Errorf("catalog %s is a directory: pass --out <file.yaml>", path)
	}
	return path, nil
}

func saveDraft(w io.Writer, env *environment, d editor.Draft, target string) error {
	m, err := editor.Save(env.catalog, d)
	if err != nil {
		env.log.Warn("edit rejected", "module", d.ID, "error", err)
		return fmt.Errorf("module %s not saved: %w", d.ID, err)
	}
	if err := catalog.Write(target, env.catalog.All()); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	env.log.Info("module saved", "module", m.ID, "new", d.New, "path", target)

	goodColor.Fprint(w, "Saved ")
	fmt.Fprintf(w, "%s (%d cards, %d questions) to %s\n", m.ID, len(m.Flashcards), len(m.Quiz), target)
	return nil
}

func init() {
	f := editCmd.Flags()
	f.Bool("new", false, "Create a new module with this id")
	f.String("title", "", "Module title")
	f.String("level", "", "Module level")
	f.String("description", "", "Short description")
	f.String("video", "", "Video URL")
	f.String("content", "", "Markdown file with the lesson content")
	f.String("flashcards", "", "JSON file with the flashcards array")
	f.String("quiz", "", "JSON file with the quiz array")
	f.StringP("out", "o", "", "Catalog file to write (defaults to --catalog)")
}
