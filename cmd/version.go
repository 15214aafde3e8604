package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/belajar/internal/catalog"
	"github.com/abhisek/belajar/internal/store"
)

// version is set via -ldflags at build time.
var version = ""

func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the data formats it reads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if short, _ := cmd.Flags().GetBool("short"); short {
			_, err := fmt.Fprintln(out, buildVersion())
			return err
		}
		_, err := fmt.Fprintf(out, "belajar %s\ncatalog schema %s\ndatabase schema v%d\n",
			buildVersion(), catalog.SchemaVersion, store.SchemaVersion)
		return err
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version")
}
