package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/abhisek/belajar/internal/llm"
	"github.com/abhisek/belajar/internal/store"
)

// purposeWidth fits the longest assist purpose, "assist-flashcards".
const purposeWidth = 20

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect content assist LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return listLLMEvents(cmd.Context(), cmd.OutOrStdout(), env, store.QueryOpts{Limit: limit, Purpose: purpose})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return viewLLMEvent(cmd.Context(), cmd.OutOrStdout(), env, args[0])
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return printLLMStats(cmd.Context(), cmd.OutOrStdout(), env)
	},
}

func listLLMEvents(ctx context.Context, w io.Writer, env *environment, opts store.QueryOpts) error {
	events, err := queryLLMEvents(ctx, env, opts)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM events found.")
		return nil
	}

	headingColor.Fprintf(w, "%-8s  %-19s  %-20s  %-28s  %-6s  %-6s  %-7s  %s\n",
		"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
	ruler(w, 108)
	for _, e := range events {
		ok := goodColor.Sprint("✓")
		if !e.Success {
			ok = badColor.Sprint("✗")
		}
		fmt.Fprintf(w, "%-8s  %-19s  %-20s  %-28s  %-6d  %-6d  %-7d  %s\n",
			truncate(e.ID, 8),
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(e.Purpose, purposeWidth),
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
	return nil
}

// viewLLMEvent prints the event whose id starts with prefix, the way list
// shows ids shortened.
func viewLLMEvent(ctx context.Context, w io.Writer, env *environment, prefix string) error {
	events, err := queryLLMEvents(ctx, env, store.QueryOpts{})
	if err != nil {
		return err
	}
	matches := lo.Filter(events, func(e store.LLMRequestEvent, _ int) bool {
		return strings.HasPrefix(e.ID, prefix)
	})
	switch len(matches) {
	case 0:
		return fmt.Errorf("event %s not found", prefix)
	case 1:
	default:
		return fmt.Errorf("event id %s is ambiguous (%d matches)", prefix, len(matches))
	}
	e := matches[0]

	sep := strings.Repeat("─", 60)
	fmt.Fprintf(w, "ID:        %s\n", e.ID)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider:  %s\n", e.Provider)
	fmt.Fprintf(w, "Model:     %s\n", e.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
	fmt.Fprintf(w, "Success:   %v\n", e.Success)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
	}

	for _, part := range []struct{ label, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sep)
		headingColor.Fprintln(w, part.label)
		fmt.Fprintln(w, sep)
		if part.body == "" {
			fmt.Fprintln(w, "(not captured)")
			continue
		}
		if gjson.Valid(part.body) {
			part.body = gjson.Get(part.body, "@pretty").String()
		}
		fmt.Fprintln(w, strings.TrimRight(part.body, "\n"))
	}
	return nil
}

// usage aggregates LLM events under one key.
type usage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

func aggregateUsage(events []store.LLMRequestEvent, key func(store.LLMRequestEvent) string) []usage {
	groups := lo.GroupBy(events, key)
	out := make([]usage, 0, len(groups))
	for k, evs := range groups {
		u := usage{Key: k, Calls: len(evs)}
		var latency int64
		for _, e := range evs {
			u.InputTokens += e.InputTokens
			u.OutputTokens += e.OutputTokens
			latency += e.LatencyMs
		}
		u.AvgLatencyMs = latency / int64(len(evs))
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Calls != out[j].Calls {
			return out[i].Calls > out[j].Calls
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func printLLMStats(ctx context.Context, w io.Writer, env *environment) error {
	events, err := queryLLMEvents(ctx, env, store.QueryOpts{})
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return nil
	}

	headingColor.Fprintln(w, "Usage by Purpose")
	ruler(w, 76)
	fmt.Fprintf(w, "%-20s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	ruler(w, 76)

	var totalCalls, totalIn, totalOut int
	for _, u := range aggregateUsage(events, func(e store.LLMRequestEvent) string { return e.Purpose }) {
		fmt.Fprintf(w, "%-20s  %6d  %10d  %10d  %10d  %8d\n",
			truncate(u.Key, purposeWidth), u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		totalCalls += u.Calls
		totalIn += u.InputTokens
		totalOut += u.OutputTokens
	}
	ruler(w, 76)
	fmt.Fprintf(w, "%-20s  %6d  %10d  %10d  %10d\n",
		"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)

	fmt.Fprintln(w)
	headingColor.Fprintln(w, "Estimated Cost (USD)")
	ruler(w, 76)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n",
		"Model", "Calls", "Input", "Output", "Cost")
	ruler(w, 76)

	var totalCost float64
	var unknownModels []string
	for _, u := range aggregateUsage(events, func(e store.LLMRequestEvent) string { return e.Model }) {
		cost := llm.LookupCost(u.Key)
		if cost == nil {
			unknownModels = append(unknownModels, u.Key)
			fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(u.Key, 32), u.Calls, u.InputTokens, u.OutputTokens, "?")
			continue
		}
		c := cost.Cost(u.InputTokens, u.OutputTokens)
		totalCost += c
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(u.Key, 32), u.Calls, u.InputTokens, u.OutputTokens, formatCost(c))
	}

	ruler(w, 76)
	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))
	if len(unknownModels) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
	}
	return nil
}

func queryLLMEvents(ctx context.Context, env *environment, opts store.QueryOpts) ([]store.LLMRequestEvent, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := env.requireEvents(); err != nil {
		return nil, err
	}
	events, err := env.events.QueryLLMEvents(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return events, nil
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (assist-flashcards, assist-quiz)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
