// Package cli provides the command-line interface for the journal application.
package cli

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "pnl-journal/internal/errors"
	"pnl-journal/internal/models"
)

// addExportCommands adds export commands.
func addExportCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export journal data",
	}

	cmd.AddCommand(newExportCSVCmd(app))

	rootCmd.AddCommand(cmd)
}

func newExportCSVCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv <path>",
		Short: "Export day records to a CSV file",
		Long: `Write all day records to a CSV file, one row per day. Trades are encoded
as a semicolon-separated SYMBOL:PCT list in a single column.`,
		Example: `  pnlj export csv journal.csv
  pnlj export csv march.csv --month 2024-03`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			records, _, err := loadRecords(app, cmd, ctx)
			if err != nil {
				output.Error("Failed to load records: %v", err)
				return err
			}

			path := args[0]
			f, err := os.Create(path)
			if err != nil {
				output.Error("Failed to create %s: %v", path, err)
				return err
			}
			defer f.Close()

			w := csv.NewWriter(f)
			if err := w.Write([]string{"date", "total_pl", "number_of_trades", "trades", "tags", "falling_knives", "notes"}); err != nil {
				return err
			}

			for _, r := range records {
				if err := w.Write(recordRow(r)); err != nil {
					return err
				}
			}

			w.Flush()
			if err := w.Error(); err != nil {
				output.Error("Failed to write %s: %v", path, err)
				return apperrors.Wrap(err, "csv export")
			}

			output.Success("✓ Exported %d records to %s", len(records), path)
			return nil
		},
	}

	cmd.Flags().Bool("raw", false, "skip the outlier filter")
	cmd.Flags().String("month", "", "restrict to a month (YYYY-MM)")
	cmd.Flags().String("from", "", "start date inclusive (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date inclusive (YYYY-MM-DD)")

	return cmd
}

func recordRow(r models.DayRecord) []string {
	trades := make([]string, len(r.Trades))
	for i, t := range r.Trades {
		trades[i] = t.Symbol + ":" + strconv.FormatFloat(t.PercentReturn, 'f', -1, 64)
	}
	return []string{
		r.ID,
		strconv.FormatFloat(r.TotalPL, 'f', 2, 64),
		strconv.Itoa(r.NumberOfTrades),
		strings.Join(trades, ";"),
		strings.Join(r.Tags, ";"),
		strconv.Itoa(r.FallingKnifeCount()),
		r.Notes,
	}
}
