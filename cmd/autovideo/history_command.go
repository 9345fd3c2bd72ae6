package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"autovideo/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var modFlag string
	var limitFlag int
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistoryStore(ctx, cmd, func(store *history.Store) error {
				mod := strings.TrimSpace(modFlag)
				fetchLimit := limitFlag
				if mod != "" {
					fetchLimit = 0
				}
				rows, err := store.ListRecent(cmd.Context(), fetchLimit)
				if err != nil {
					return err
				}
				if mod != "" {
					rows = filterByMod(rows, mod)
					if limitFlag > 0 && len(rows) > limitFlag {
						rows = rows[:limitFlag]
					}
				}
				if jsonFlag {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(rows)
				}
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No conversions recorded")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Mod", "Video", "Status", "Grids", "Frames", "When"},
					buildHistoryRows(rows),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&modFlag, "mod", "", "Only show conversions for this mod")
	cmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of conversions to show, 0 for all")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of a table")

	cmd.AddCommand(newHistoryStatsCommand(ctx))
	cmd.AddCommand(newHistoryClearCommand(ctx))
	return cmd
}

func newHistoryStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize recorded conversions by outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistoryStore(ctx, cmd, func(store *history.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				total := 0
				rows := make([][]string, 0, len(stats))
				for _, status := range []history.Status{history.StatusCompleted, history.StatusFailed, history.StatusRejected} {
					count, ok := stats[status]
					if !ok {
						continue
					}
					total += count
					rows = append(rows, []string{string(status), strconv.Itoa(count)})
				}
				if total == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No conversions recorded")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Status", "Count"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistoryStore(ctx, cmd, func(store *history.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d conversion records\n", removed)
				return nil
			})
		},
	}
}

// withHistoryStore opens the ledger for one command invocation. A disabled
// ledger prints a notice instead of failing.
func withHistoryStore(ctx *commandContext, cmd *cobra.Command, fn func(*history.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "Conversion history is disabled in the configuration")
		return nil
	}
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func filterByMod(rows []*history.Conversion, mod string) []*history.Conversion {
	filtered := rows[:0]
	for _, row := range rows {
		if strings.EqualFold(row.ModName, mod) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func buildHistoryRows(rows []*history.Conversion) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		status := string(row.Status)
		if row.Status != history.StatusCompleted && row.ErrorMessage != "" {
			status = fmt.Sprintf("%s: %s", row.Status, truncateMessage(row.ErrorMessage, 40))
		}
		out = append(out, []string{
			strconv.FormatInt(row.ID, 10),
			row.ModName,
			row.VideoName,
			status,
			strconv.Itoa(row.GridCount),
			strconv.Itoa(row.FrameCount),
			row.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return out
}

func truncateMessage(message string, limit int) string {
	message = strings.TrimSpace(message)
	if len(message) <= limit {
		return message
	}
	return message[:limit] + "..."
}
