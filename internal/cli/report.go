// Package cli provides the command-line interface for the journal application.
package cli

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	apperrors "pnl-journal/internal/errors"
	"pnl-journal/internal/logging"
	"pnl-journal/internal/models"
	"pnl-journal/internal/stats"
	"pnl-journal/internal/store"
)

// addReportCommands adds performance report commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Performance reports",
		Long: `Derive performance statistics from the stored day records.

Reports apply the configured outlier filter by default; pass --raw to
compute over the unfiltered collection.`,
	}

	cmd.PersistentFlags().Bool("raw", false, "skip the outlier filter")
	cmd.PersistentFlags().String("month", "", "restrict to a month (YYYY-MM)")
	cmd.PersistentFlags().String("from", "", "start date inclusive (YYYY-MM-DD)")
	cmd.PersistentFlags().String("to", "", "end date inclusive (YYYY-MM-DD)")

	cmd.AddCommand(newReportSummaryCmd(app))
	cmd.AddCommand(newReportTickersCmd(app))
	cmd.AddCommand(newReportWeekdaysCmd(app))
	cmd.AddCommand(newReportTagsCmd(app))
	cmd.AddCommand(newReportMonthlyCmd(app))
	cmd.AddCommand(newReportRiskCmd(app))
	cmd.AddCommand(newReportRollingCmd(app))
	cmd.AddCommand(newReportDrawdownCmd(app))
	cmd.AddCommand(newReportVolatilityCmd(app))
	cmd.AddCommand(newReportDistributionCmd(app))
	cmd.AddCommand(newReportStreaksCmd(app))

	rootCmd.AddCommand(cmd)
}

// loadRecords fetches the record collection for a report, applying the
// date filters from flags and the outlier filter unless --raw is set.
func loadRecords(app *App, cmd *cobra.Command, ctx context.Context) ([]models.DayRecord, bool, error) {
	if app.Store == nil {
		return nil, false, apperrors.ErrDatabaseError
	}

	filter := store.RecordFilter{}
	filter.Month, _ = cmd.Flags().GetString("month")
	filter.From, _ = cmd.Flags().GetString("from")
	filter.To, _ = cmd.Flags().GetString("to")

	records, err := app.Store.ListRecords(ctx, filter)
	if err != nil {
		return nil, false, err
	}

	raw, _ := cmd.Flags().GetBool("raw")
	filtered := app.Config.Journal.FilterOutliers && !raw
	if filtered {
		records = stats.FilterOutliersAt(records, app.Config.Journal.OutlierThreshold)
	}

	logging.LogReport(app.Logger, cmd.Name(), len(records), filtered)
	return records, filtered, nil
}

func reportContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func newReportSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Overall performance summary",
		Example: `  pnlj report summary
  pnlj report summary --month 2024-03
  pnlj report summary --raw --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			records, filtered, err := loadRecords(app, cmd, ctx)
			if err != nil {
				output.Error("Failed to load records: %v", err)
				return err
			}

			streaks := stats.WinLossStreaks(records)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"records":             len(records),
					"outliersFiltered":    filtered,
					"cumulativePL":        stats.CumulativePL(records),
					"winRate":             stats.WinRate(records),
					"avgReturnPerTrade":   stats.AvgReturnPerTrade(records),
					"avgTradesPerDay":     stats.AvgTradesPerDay(records),
					"maxDrawdown":         stats.MaxDrawdown(records),
					"profitFactor":        stats.ProfitFactor(records),
					"expectancy":          stats.Expectancy(records),
					"avgWinLossRatio":     stats.AvgWinLossRatio(records),
					"largestWin":          stats.LargestWin(records),
					"largestLoss":         stats.LargestLoss(records),
					"recoveryFactor":      stats.RecoveryFactor(records),
					"sharpeRatio":         stats.SharpeRatio(records),
					"sortinoRatio":        stats.SortinoRatio(records),
					"calmarRatio":         stats.CalmarRatio(records),
					"fallingKnifeWinRate": stats.FallingKnifeWinRate(records),
					"weeklyPL":            stats.WeeklyPL(records),
					"streaks":             streaks,
				})
			}

			if len(records) == 0 {
				output.Info("No records to report on.")
				return nil
			}

			output.Bold("Performance Summary")
			output.Printf("  Records:           %d", len(records))
			if filtered {
				output.Printf(" %s", output.Yellow("(outliers filtered)"))
			}
			output.Println()
			output.Println()

			output.Bold("P&L")
			output.Printf("  Cumulative P&L:    %s\n", output.FormatPnL(stats.CumulativePL(records)))
			output.Printf("  This Week:         %s\n", output.FormatPnL(stats.WeeklyPL(records)))
			output.Printf("  Largest Win:       %s\n", output.FormatPnL(stats.LargestWin(records)))
			output.Printf("  Largest Loss:      %s\n", output.FormatPnL(stats.LargestLoss(records)))
			output.Printf("  Avg Return/Trade:  %s\n", output.FormatPnL(stats.AvgReturnPerTrade(records)))
			output.Printf("  Expectancy:        %s\n", output.FormatPnL(stats.Expectancy(records)))
			output.Println()

			output.Bold("Ratios")
			output.Printf("  Win Rate:          %s\n", stats.FormatPercent(stats.WinRate(records)))
			output.Printf("  Knife-Free Rate:   %s\n", stats.FormatPercent(stats.FallingKnifeWinRate(records)))
			output.Printf("  Profit Factor:     %s\n", stats.FormatRatio(stats.ProfitFactor(records)))
			output.Printf("  Avg Win/Loss:      %s\n", stats.FormatRatio(stats.AvgWinLossRatio(records)))
			output.Printf("  Sharpe:            %s\n", stats.FormatRatio(stats.SharpeRatio(records)))
			output.Printf("  Sortino:           %s\n", stats.FormatRatio(stats.SortinoRatio(records)))
			output.Printf("  Calmar:            %s\n", stats.FormatRatio(stats.CalmarRatio(records)))
			output.Println()

			output.Bold("Risk")
			output.Printf("  Max Drawdown:      %s\n", stats.FormatPercent(stats.MaxDrawdown(records)))
			output.Printf("  Recovery Factor:   %s\n", stats.FormatRatio(stats.RecoveryFactor(records)))
			output.Printf("  Avg Trades/Day:    %.2f\n", stats.AvgTradesPerDay(records))
			output.Println()

			output.Bold("Streaks")
			output.Printf("  Longest Win:       %d\n", streaks.LongestWin)
			output.Printf("  Longest Loss:      %d\n", streaks.LongestLoss)
			output.Printf("  Current:           %s\n", FormatStreak(streaks.Current))
			return nil
		},
	}
}

func newReportTickersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tickers",
		Short: "P&L attribution by ticker",
		Long: `Attribute each day's P&L evenly across its trades and accumulate
per-symbol totals. The even split is an approximation since only per-trade
percentage returns are recorded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			records, _, err := loadRecords(app, cmd, ctx)
			if err != nil {
				output.Error("Failed to load records: %v", err)
				return err
			}

			rows := stats.PLByTicker(records)
			if output.IsJSON() {
				return output.JSON(rows)
			}
			if len(rows) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			output.Bold("P&L by Ticker")
			table := NewTable(output, "Symbol", "P&L", "Trades")
			for _, row := range rows {
				table.AddRow(row.Symbol, output.FormatPnL(row.PL), FormatCount(row.Trades))
			}
			table.Render()
			return nil
		},
	}
}

func newReportWeekdaysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "weekdays",
		Short: "P&L by day of week",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			records, _, err := loadRecords(app, cmd, ctx)
			if err != nil {
				output.Error("Failed to load records: %v", err)
				return err
			}

			rows := stats.PLByDayOfWeek(records)
			if output.IsJSON() {
				return output.JSON(rows)
			}

			var max float64
			for _, row := range rows {
				if abs := math.Abs(row.PL); abs > max {
					max = abs
				}
			}

			output.Bold("P&L by Day of Week")
			table := NewTable(output, "Weekday", "P&L", "")
			for _, row := range rows {
				bar := Bar(row.PL, max, 20)
				if row.PL < 0 {
					bar = output.Red(Bar(-row.PL, max, 20))
				} else if row.PL > 0 {
					bar = output.Green(bar)
				}
				table.AddRow(FormatWeekday(row.Weekday), output.FormatPnL(row.PL), bar)
			}
			table.Render()
			return nil
		},
	}
}

func newReportTagsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "P&L attribution by tag",
		Long: `Accumulate each day's full P&L under every one of its tags. A multi-tag
day counts once per tag, so tag totals can exceed cumulative P&L.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			records, _, err := loadRecords(app, cmd, ctx)
			if err != nil {
				output.Error("Failed to load records: %v", err)
				return err
			}

			rows := stats.PLByTag(records)
			if output.IsJSON() {
				return output.JSON(rows)
			}
			if len(rows) == 0 {
				output.Info("No tagged records.")
				return nil
			}

			output.Bold("P&L by Tag")
			table := NewTable(output, "Tag", "P&L", "Days")
			for _, row := range rows {
				table.AddRow(row.Tag, output.FormatPnL(row.PL), FormatCount(row.Count))
			}
			table.Render()
			return nil
		},
	}
}

func newReportMonthlyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "monthly",
		Short: "Monthly returns",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			records, _, err := loadRecords(app, cmd, ctx)
			if err != nil {
				output.Error("Failed to load records: %v", err)
				return err
			}

			rows := stats.MonthlyReturns(records)
			if output.IsJSON() {
				return output.JSON(rows)
			}
			if len(rows) == 0 {
				output.Info("No records to report on.")
				return nil
			}

			year, month := stats.MostRecentMonth(records)
			knives := stats.MonthlyFallingKnives(records, year, month)

			output.Bold("Monthly Returns")
			table := NewTable(output, "Month", "P&L", "Trades", "Win Rate")
			for _, row := range rows {
				table.AddRow(
					FormatMonth(row.Month),
					output.FormatPnL(row.PL),
					FormatCount(row.Trades),
					stats.FormatPercent(row.WinRate),
				)
			}
			table.Render()

			output.Println()
			output.Printf("Latest month: %s", FormatMonth(models.MonthKey(year, month)))
			if knives > 0 {
				output.Printf("  (%d falling knives)", knives)
			}
			output.Println()
			return nil
		},
	}
}

func newReportRiskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "risk",
		Short: "Value-at-risk and R-multiples",
		Long: `Historical value-at-risk from the empirical day-P&L distribution, plus
each day's outcome as a multiple of the average loss ("R").`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			records, _, err := loadRecords(app, cmd, ctx)
			if err != nil {
				output.Error("Failed to load records: %v", err)
				return err
			}

			risk := stats.RiskMetrics(records)
			rmult := stats.RMultiples(records)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"risk":       risk,
					"rMultiples": rmult,
				})
			}
			if len(records) == 0 {
				output.Info("No records to report on.")
				return nil
			}

			output.Bold("Value at Risk (daily)")
			output.Printf("  VaR 95%%:   %s\n", output.FormatPnL(risk.ValueAtRisk95))
			output.Printf("  VaR 99%%:   %s\n", output.FormatPnL(risk.ValueAtRisk99))
			output.Printf("  CVaR 95%%:  %s\n", output.FormatPnL(risk.ConditionalVaR95))
			output.Println()

			output.Bold("R-Multiples")
			output.Printf("  Avg Win R:  %s\n", stats.FormatRatio(rmult.AvgWinR))
			output.Printf("  Avg Loss R: %.0f\n", rmult.AvgLossR)

			// show the tails only, the full series is available via --json
			n := len(rmult.Days)
			if n > 10 {
				rmult.Days = rmult.Days[n-10:]
				output.Println()
				output.Dim("Last 10 days:")
			}
			table := NewTable(output, "Date", "R")
			for _, p := range rmult.Days {
				table.AddRow(p.Date, fmt.Sprintf("%+.2f", p.RMultiple))
			}
			table.Render()
			return nil
		},
	}
}

func newReportRollingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rolling",
		Short: "Rolling cumulative P&L, window average and win rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			records, _, err := loadRecords(app, cmd, ctx)
			if err != nil {
				output.Error("Failed to load records: %v", err)
				return err
			}

			window, _ := cmd.Flags().GetInt("window")
			if window <= 0 {
				window = app.Config.Journal.RollingWindow
			}

			points := stats.RollingMetrics(records, window)
			if output.IsJSON() {
				return output.JSON(points)
			}
			if len(points) == 0 {
				output.Info("No records to report on.")
				return nil
			}

			output.Bold("Rolling Metrics (window %d)", window)
			table := NewTable(output, "Date", "Cumulative", "Window Avg", "Window Win Rate")
			for _, p := range points {
				table.AddRow(
					p.Date,
					output.FormatPnL(p.CumulativePL),
					output.FormatPnL(p.WindowAvgPL),
					stats.FormatPercent(p.WindowWinRate),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Int("window", 0, "trailing window size (default from config)")
	return cmd
}

func newReportDrawdownCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "drawdown",
		Short: "Drawdown series",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			records, _, err := loadRecords(app, cmd, ctx)
			if err != nil {
				output.Error("Failed to load records: %v", err)
				return err
			}

			points := stats.DrawdownSeries(records)
			if output.IsJSON() {
				return output.JSON(points)
			}
			if len(points) == 0 {
				output.Info("No records to report on.")
				return nil
			}

			output.Bold("Drawdown Series (max %s)", stats.FormatPercent(stats.MaxDrawdown(records)))
			table := NewTable(output, "Date", "Drawdown", "Underwater")
			for _, p := range points {
				table.AddRow(
					p.Date,
					stats.FormatPercent(p.Drawdown),
					output.FormatPnL(p.Underwater),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newReportVolatilityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volatility",
		Short: "Rolling annualized volatility of daily P&L",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			records, _, err := loadRecords(app, cmd, ctx)
			if err != nil {
				output.Error("Failed to load records: %v", err)
				return err
			}

			window, _ := cmd.Flags().GetInt("window")
			if window <= 0 {
				window = app.Config.Journal.VolatilityWindow
			}

			points := stats.VolatilitySeries(records, window)
			if output.IsJSON() {
				return output.JSON(points)
			}
			if len(points) == 0 {
				output.Info("Not enough records for a full window of %d.", window)
				return nil
			}

			output.Bold("Volatility Series (window %d, annualized)", window)
			table := NewTable(output, "Date", "Volatility")
			for _, p := range points {
				table.AddRow(p.Date, stats.FormatCurrency(p.Volatility))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Int("window", 0, "trailing window size (default from config)")
	return cmd
}

func newReportDistributionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "distribution",
		Short: "Histogram of per-trade returns",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			records, _, err := loadRecords(app, cmd, ctx)
			if err != nil {
				output.Error("Failed to load records: %v", err)
				return err
			}

			bins := stats.Histogram(records)
			if output.IsJSON() {
				return output.JSON(bins)
			}
			if len(bins) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			maxCount := 0
			for _, b := range bins {
				if b.Count > maxCount {
					maxCount = b.Count
				}
			}

			output.Bold("Return Distribution")
			table := NewTable(output, "Range", "Count", "")
			for _, b := range bins {
				table.AddRow(
					fmt.Sprintf("%+.0f%% .. %+.0f%%", b.Low, b.High),
					FormatCount(b.Count),
					Bar(float64(b.Count), float64(maxCount), 30),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newReportStreaksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "streaks",
		Short: "Win/loss streaks and runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := reportContext()
			defer cancel()

			records, _, err := loadRecords(app, cmd, ctx)
			if err != nil {
				output.Error("Failed to load records: %v", err)
				return err
			}

			streaks := stats.WinLossStreaks(records)
			runs := stats.ConsecutiveRuns(records)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"streaks": streaks,
					"runs":    runs,
				})
			}
			if len(runs) == 0 {
				output.Info("No trading days recorded.")
				return nil
			}

			output.Bold("Streaks")
			output.Printf("  Longest Win:  %d\n", streaks.LongestWin)
			output.Printf("  Longest Loss: %d\n", streaks.LongestLoss)
			output.Printf("  Current:      %s\n", FormatStreak(streaks.Current))
			output.Println()

			output.Bold("Runs")
			for _, run := range runs {
				if run.Win {
					output.Printf("  %s\n", output.Green(fmt.Sprintf("%d win", run.Length)))
				} else {
					output.Printf("  %s\n", output.Red(fmt.Sprintf("%d loss", run.Length)))
				}
			}
			return nil
		},
	}
}
