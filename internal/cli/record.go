// Package cli provides the command-line interface for the journal application.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "pnl-journal/internal/errors"
	"pnl-journal/internal/logging"
	"pnl-journal/internal/models"
	"pnl-journal/internal/store"
)

// addRecordCommands adds day-record commands.
func addRecordCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Day record management",
		Long:  "Create, inspect, and remove daily journal records.",
	}

	cmd.AddCommand(newRecordAddCmd(app))
	cmd.AddCommand(newRecordShowCmd(app))
	cmd.AddCommand(newRecordRmCmd(app))
	cmd.AddCommand(newRecordListCmd(app))

	rootCmd.AddCommand(cmd)
}

// resolveDay turns a date argument into a YYYY-MM-DD key. "today" and
// "yesterday" are accepted as shorthands.
func resolveDay(arg string) (string, error) {
	switch arg {
	case "today":
		return models.DayKey(time.Now()), nil
	case "yesterday":
		return models.DayKey(time.Now().AddDate(0, 0, -1)), nil
	}
	if _, err := models.ParseDay(arg); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInvalidDate, err.Error())
	}
	return arg, nil
}

// parseTradeSpec parses a SYMBOL:PCT trade flag value.
func parseTradeSpec(spec string) (models.Trade, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return models.Trade{}, fmt.Errorf("invalid trade %q: want SYMBOL:PCT", spec)
	}
	pct, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return models.Trade{}, fmt.Errorf("invalid trade return in %q: %v", spec, err)
	}
	return models.Trade{
		Symbol:        strings.ToUpper(parts[0]),
		PercentReturn: pct,
	}, nil
}

func newRecordAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <date>",
		Short: "Add or replace a day record",
		Long: `Add a journal record for a calendar day, replacing any existing record
for that date wholesale. The date is YYYY-MM-DD, or "today"/"yesterday".`,
		Example: `  pnlj record add today --pl 420.50 --trade AAPL:1.2 --trade TSLA:-0.7
  pnlj record add 2024-03-15 --pl -150 --tags momentum,earnings --notes "choppy open"
  pnlj record add today --pl 0 --knives 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized.")
				return apperrors.ErrDatabaseError
			}

			id, err := resolveDay(args[0])
			if err != nil {
				output.Error("Invalid date: %v", err)
				return err
			}

			pl, _ := cmd.Flags().GetFloat64("pl")
			tradeSpecs, _ := cmd.Flags().GetStringArray("trade")
			notes, _ := cmd.Flags().GetString("notes")
			tagsCSV, _ := cmd.Flags().GetString("tags")
			knives, _ := cmd.Flags().GetInt("knives")
			numTrades, _ := cmd.Flags().GetInt("num-trades")

			record := &models.DayRecord{
				ID:      id,
				TotalPL: pl,
				Notes:   notes,
			}

			for _, spec := range tradeSpecs {
				trade, err := parseTradeSpec(spec)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				record.Trades = append(record.Trades, trade)
			}
			record.NumberOfTrades = len(record.Trades)
			if cmd.Flags().Changed("num-trades") {
				record.NumberOfTrades = numTrades
			}

			if tagsCSV != "" {
				for _, tag := range strings.Split(tagsCSV, ",") {
					if tag = strings.TrimSpace(tag); tag != "" {
						record.Tags = append(record.Tags, tag)
					}
				}
			}

			if cmd.Flags().Changed("knives") {
				record.FallingKnives = &knives
			}

			if err := app.Store.SaveRecord(ctx, record); err != nil {
				output.Error("Failed to save record: %v", err)
				return err
			}
			logging.LogRecordSaved(app.Logger, record.ID, record.TotalPL, record.NumberOfTrades)

			if output.IsJSON() {
				return output.JSON(record)
			}
			output.Success("✓ Record saved for %s (%s)", id, output.FormatPnL(pl))
			return nil
		},
	}

	cmd.Flags().Float64("pl", 0, "Day total P&L (signed)")
	cmd.Flags().StringArray("trade", nil, "Trade as SYMBOL:PCT, repeatable")
	cmd.Flags().String("notes", "", "Free-text notes")
	cmd.Flags().String("tags", "", "Comma-separated tags")
	cmd.Flags().Int("knives", 0, "Falling-knife count for the day")
	cmd.Flags().Int("num-trades", 0, "Override the stored trade count")

	return cmd
}

func newRecordShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "show <date>",
		Short:   "Show a day record",
		Example: `  pnlj record show 2024-03-15`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized.")
				return apperrors.ErrDatabaseError
			}

			id, err := resolveDay(args[0])
			if err != nil {
				output.Error("Invalid date: %v", err)
				return err
			}

			record, err := app.Store.GetRecord(ctx, id)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrRecordNotFound) {
					output.Info("No record for %s.", id)
					return nil
				}
				output.Error("Failed to fetch record: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(record)
			}

			output.Bold("Record %s (%s)", FormatDate(record.Day()), FormatWeekday(record.Day().Weekday()))
			output.Printf("  Total P&L:  %s\n", output.FormatPnL(record.TotalPL))
			output.Printf("  Trades:     %d\n", record.NumberOfTrades)
			if record.FallingKnifeCount() > 0 {
				output.Printf("  Knives:     %d\n", record.FallingKnifeCount())
			}
			if len(record.Tags) > 0 {
				output.Printf("  Tags:       %s\n", strings.Join(record.Tags, ", "))
			}
			if record.Notes != "" {
				output.Printf("  Notes:      %s\n", record.Notes)
			}

			if len(record.Trades) > 0 {
				output.Println()
				table := NewTable(output, "Symbol", "Return")
				for _, t := range record.Trades {
					table.AddRow(t.Symbol, output.FormatPercent(t.PercentReturn))
				}
				table.Render()
			}
			return nil
		},
	}
}

func newRecordRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <date>",
		Short:   "Remove a day record",
		Example: `  pnlj record rm 2024-03-15`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized.")
				return apperrors.ErrDatabaseError
			}

			id, err := resolveDay(args[0])
			if err != nil {
				output.Error("Invalid date: %v", err)
				return err
			}

			if err := app.Store.DeleteRecord(ctx, id); err != nil {
				if apperrors.Is(err, apperrors.ErrRecordNotFound) {
					output.Info("No record for %s.", id)
					return nil
				}
				output.Error("Failed to delete record: %v", err)
				return err
			}
			logging.LogRecordDeleted(app.Logger, id)

			output.Success("✓ Record %s deleted", id)
			return nil
		},
	}
}

func newRecordListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List day records",
		Example: `  pnlj record list --month 2024-03
  pnlj record list --from 2024-01-01 --to 2024-03-31
  pnlj record list --tag momentum --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized.")
				return apperrors.ErrDatabaseError
			}

			filter := store.RecordFilter{}
			filter.Month, _ = cmd.Flags().GetString("month")
			filter.From, _ = cmd.Flags().GetString("from")
			filter.To, _ = cmd.Flags().GetString("to")
			filter.Tag, _ = cmd.Flags().GetString("tag")
			filter.Limit, _ = cmd.Flags().GetInt("limit")

			records, err := app.Store.ListRecords(ctx, filter)
			if err != nil {
				output.Error("Failed to list records: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}

			if len(records) == 0 {
				output.Info("No records found.")
				return nil
			}

			table := NewTable(output, "Date", "P&L", "Trades", "Knives", "Tags")
			for _, r := range records {
				table.AddRow(
					r.ID,
					output.FormatPnL(r.TotalPL),
					FormatCount(r.NumberOfTrades),
					FormatCount(r.FallingKnifeCount()),
					TruncateString(strings.Join(r.Tags, ","), 30),
				)
			}
			table.Render()

			output.Println()
			output.Printf("%d records\n", len(records))
			return nil
		},
	}

	cmd.Flags().String("month", "", "Filter by month (YYYY-MM)")
	cmd.Flags().String("from", "", "Start date inclusive (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "End date inclusive (YYYY-MM-DD)")
	cmd.Flags().String("tag", "", "Filter by tag")
	cmd.Flags().Int("limit", 0, "Maximum records to return")

	return cmd
}
