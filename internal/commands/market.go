package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/brownbull-back/internal/app"
	"github.com/brownbull-back/pkg/models"
)

var (
	watchEvery     time.Duration
	marketLogLevel string
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Inspect market data",
	Long:  "Commands for fetching commodity snapshots outside the HTTP API",
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch one snapshot and print it as JSON",
	Long: `Run a single fetch-or-generate cycle and print the same JSON body
GET /api/market-data would return.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newMarketApp(cmd)
		if err != nil {
			return err
		}

		snap := application.MarketService().Snapshot(cmd.Context())
		application.GetLogger().WithField("source", snap.Source).Info("Snapshot ready")

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll snapshots on a fixed cadence",
	Long: `Fetch a snapshot immediately and then on every tick, printing one
summary line per cycle until interrupted.

Examples:
  brownbull market watch              # Every 30 seconds
  brownbull market watch --every 5m   # Every five minutes`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(marketCmd)
	marketCmd.AddCommand(snapshotCmd)
	marketCmd.AddCommand(watchCmd)

	marketCmd.PersistentFlags().StringVarP(&marketLogLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	watchCmd.Flags().DurationVar(&watchEvery, "every", 0, "Poll interval (default MARKET_POLL_INTERVAL)")
}

func newMarketApp(cmd *cobra.Command) (*app.App, error) {
	cfg, log, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	log.SetOutput(cmd.ErrOrStderr())

	application := app.New(cfg, log)
	if err := application.Initialize(); err != nil {
		return nil, err
	}
	return application, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	application, err := newMarketApp(cmd)
	if err != nil {
		return err
	}
	log := application.GetLogger()

	every := watchEvery
	if every <= 0 {
		every = application.GetConfig().Market.PollInterval
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	poll := func() {
		writeSummary(out, application.MarketService().Snapshot(ctx))
	}

	c := cron.New(
		cron.WithLogger(cron.PrintfLogger(log)),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log))),
	)
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", every), poll); err != nil {
		return fmt.Errorf("invalid poll interval %s: %w", every, err)
	}

	log.WithField("every", every.String()).Info("Watching market data")

	poll()
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()

	return nil
}

// writeSummary prints one line per snapshot, primary first and secondaries by key
func writeSummary(w io.Writer, snap models.MarketSnapshot) {
	parts := []string{formatInstrument(snap.PrimaryKey, snap.Primary)}

	keys := make([]string, 0, len(snap.Secondary))
	for k := range snap.Secondary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, formatInstrument(k, snap.Secondary[k]))
	}

	fmt.Fprintf(w, "%s %s [%s]\n",
		snap.GeneratedAt.UTC().Format(time.RFC3339),
		strings.Join(parts, " | "),
		snap.Source,
	)
}

func formatInstrument(key string, inst models.InstrumentSnapshot) string {
	return fmt.Sprintf("%s %s (%s, %s%%)",
		key,
		inst.Price.StringFixed(2),
		signed(inst.Change),
		signed(inst.ChangePercent),
	)
}

func signed(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if d.IsPositive() {
		return "+" + s
	}
	return s
}
