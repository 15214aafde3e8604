package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/belajar/internal/app"
	"github.com/abhisek/belajar/internal/assist"
	"github.com/abhisek/belajar/internal/llm"
)

// runApp opens the environment, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	d := env.deps()
	d.Assist = newAssist(cmd, env)

	focus, _ := cmd.Flags().GetBool("focus")
	skipWelcome, _ := cmd.Flags().GetBool("no-welcome")
	return app.Run(app.Options{Deps: d, Focus: focus, SkipWelcome: skipWelcome})
}

// newAssist returns the content assist service, or nil when no LLM
// provider is configured.
func newAssist(cmd *cobra.Command, env *environment) *assist.Service {
	cfg, ok := llm.ResolveConfig()
	if !ok {
		env.log.Info("content assist disabled", "reason", "no LLM provider configured")
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	acfg := assist.DefaultConfig()
	var provider llm.Provider
	var err error
	if cfg.Provider == llm.ProviderMock {
		mock := llm.NewMockProvider()
		mock.Fallback = assist.OfflineDrafter(acfg.Count)
		provider = llm.Wrap(mock, cfg, env.events, env.log)
	} else {
		provider, err = llm.NewProvider(ctx, cfg, env.events, env.log)
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Content assist will be unavailable.")
		return nil
	}
	env.log.Info("content assist enabled", "provider", cfg.Provider, "model", provider.ModelID())
	return assist.NewService(provider, acfg)
}
