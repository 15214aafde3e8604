package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/belajar/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "belajar",
	Short: "Terminal learning media",
	Long:  "Belajar: study modules with lessons, quizzes, flashcards and notes, right in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addGlobalFlags(rootCmd)

	rootCmd.Flags().Bool("focus", false, "Start in focus mode (no header or footer)")
	rootCmd.Flags().Bool("no-welcome", false, "Skip the welcome animation")

	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(importStateCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func addGlobalFlags(c *cobra.Command) {
	f := c.PersistentFlags()
	f.String("db", "", "Path to SQLite database file (overrides BELAJAR_DB)")
	f.String("store", "", "Where learner state lives: sqlite, file or redis (overrides BELAJAR_STORE)")
	f.String("catalog", "", "Catalog YAML file or directory (overrides BELAJAR_CATALOG)")
	f.Bool("teacher", false, "Enable teacher mode (overrides BELAJAR_TEACHER)")
	f.Uint64("seed", 0, "Flashcard shuffle seed, 0 seeds from the clock (overrides BELAJAR_SEED)")
}

// resolveConfig returns the environment configuration with any flags the
// user set applied on top.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("store") {
		v, _ := flags.GetString("store")
		cfg.Store = strings.ToLower(v)
	}
	if flags.Changed("catalog") {
		cfg.CatalogPath, _ = flags.GetString("catalog")
	}
	if flags.Changed("teacher") {
		cfg.Teacher, _ = flags.GetBool("teacher")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
