package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/config"
	"github.com/go-tangra/go-tangra-sysinfo/internal/journal"
	"github.com/go-tangra/go-tangra-sysinfo/internal/logger"
	"github.com/go-tangra/go-tangra-sysinfo/internal/scheduler"
	"github.com/go-tangra/go-tangra-sysinfo/internal/server"
	"github.com/go-tangra/go-tangra-sysinfo/internal/snapshot"
	"github.com/go-tangra/go-tangra-sysinfo/internal/winsvc"
	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sysinfo-agent",
	Short: "Sysinfo Agent - periodic Windows hardware snapshots over WMI",
	Long: `Sysinfo Agent queries WMI for processors, memory, disks, partitions and
video controllers on a fixed interval and assembles them into one snapshot.

Run without a subcommand to start the agent (equivalent to 'run').`,
	RunE:         runAgent,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the periodic snapshot agent",
	RunE:  runAgent,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Assemble one snapshot and print it",
	RunE:  runSnapshot,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent snapshot runs from the journal",
	RunE:  runHistory,
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge journal entries older than the specified number of days",
	RunE:  runPurge,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sysinfo-agent %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

const serviceName = "TangraSysinfoAgent"

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage Windows service installation",
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install as a Windows service",
	RunE:  runServiceInstall,
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the Windows service",
	RunE:  runServiceUninstall,
}

var (
	outputFile   string
	outputFormat string
	historyLimit int
	purgeDays    int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/sysinfo.yaml)")
	rootCmd.PersistentFlags().String("journal", "", "journal database path (default sysinfo.db)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	runCmd.Flags().Duration("interval", 0, "snapshot interval (default 5s)")
	runCmd.Flags().String("metrics-listen", "", "HTTP listen address for /metrics and /healthz (empty = off)")

	snapshotCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	snapshotCmd.Flags().StringVar(&outputFormat, "format", "json", "output format: json or yaml")

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of runs to show")

	purgeCmd.Flags().IntVar(&purgeDays, "days", 30, "purge runs older than this many days")

	serviceCmd.AddCommand(serviceInstallCmd)
	serviceCmd.AddCommand(serviceUninstallCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serviceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the persistent flag
// overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("journal"); v != "" {
		cfg.Journal.Path = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if f := cmd.Flags().Lookup("interval"); f != nil && f.Changed {
		cfg.Interval, _ = cmd.Flags().GetDuration("interval")
	}
	if v, _ := cmd.Flags().GetString("metrics-listen"); v != "" {
		cfg.MetricsListen = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newCoordinator(cfg *config.Config) *snapshot.Coordinator {
	return snapshot.NewCoordinator(
		wmiquery.NewClient(wmiquery.DefaultNamespace),
		collector.NewHostEnvironment(),
		snapshot.WithTimeout(cfg.Timeout),
		snapshot.WithLogger(logger.WithComponent("snapshot")),
	)
}

func runAgent(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Windows service mode.
	if winsvc.IsWindowsService() {
		level, err := zerolog.ParseLevel(cfg.Log.Level)
		if err != nil {
			level = zerolog.InfoLevel
		}
		winsvc.SetupEventLog(serviceName, level)
		return winsvc.RunService(serviceName, func(ctx context.Context) error {
			return serve(ctx, cfg)
		})
	}

	closer, err := logger.Init(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	// Interactive mode: shut down on SIGINT / SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg)
}

// serve runs the scheduler and, when configured, the metrics server until
// ctx ends.
func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.WithComponent("agent")

	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	sched := scheduler.New(
		newCoordinator(cfg),
		scheduler.Config{
			Interval:      cfg.Interval,
			Policy:        cfg.Collect,
			Retention:     cfg.Journal.Retention(),
			PurgeInterval: cfg.Journal.PurgeInterval,
		},
		scheduler.WithJournal(j),
		scheduler.WithSink(logSink(log)),
		scheduler.WithLogger(logger.WithComponent("scheduler")),
	)

	log.Info().
		Str("version", version).
		Dur("interval", cfg.Interval).
		Strs("categories", categoryList(cfg.Collect)).
		Msg("Sysinfo agent starting")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sched.Run(gctx)
	})
	if cfg.MetricsListen != "" {
		srvLog := logger.WithComponent("server")
		srv := server.New(cfg.MetricsListen, snapshot.Registry, sched, srvLog)
		g.Go(func() error {
			return server.Run(gctx, srv, srvLog)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("Sysinfo agent stopped")
	return nil
}

// logSink reports each snapshot's per-category record counts.
func logSink(log zerolog.Logger) scheduler.Sink {
	return func(_ context.Context, snap *snapshot.Snapshot) error {
		counts := zerolog.Dict()
		for _, cat := range collector.Categories {
			if snap.Status[cat] == snapshot.StatusDisabled {
				continue
			}
			counts.Int(string(cat), snap.Records(cat))
		}
		log.Info().
			Str("hostname", snap.Hostname).
			Time("collected_at", snap.CollectedAt).
			Dict("records", counts).
			Msg("Snapshot assembled")
		return nil
	}
}

func categoryList(p snapshot.Policy) []string {
	cats := p.EnabledCategories()
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, string(c))
	}
	return names
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outputFormat != "json" && outputFormat != "yaml" {
		return fmt.Errorf("unknown format %q", outputFormat)
	}

	cfg.Log.Output = "stderr"
	closer, err := logger.Init(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap, err := newCoordinator(cfg).Assemble(ctx, cfg.Collect)
	if err != nil {
		return fmt.Errorf("assemble snapshot: %w", err)
	}

	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := writeSnapshot(w, snap, outputFormat); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if outputFile != "" {
		fmt.Fprintf(os.Stderr, "snapshot written to %s\n", outputFile)
	}
	return nil
}

func writeSnapshot(w io.Writer, snap *snapshot.Snapshot, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	runs, err := j.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tDURATION\tHOST\tRESULT")
	for _, r := range runs {
		result := "ok"
		if r.Failed() {
			result = r.Error
		} else if failed := failedCategories(r); failed != "" {
			result = "partial: " + failed
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.StartedAt.Local().Format(time.DateTime), r.Duration.Round(time.Millisecond), r.Hostname, result)
	}
	return tw.Flush()
}

func failedCategories(r journal.Run) string {
	var out string
	for _, cat := range collector.Categories {
		if res, ok := r.Categories[string(cat)]; ok && res.Status == string(snapshot.StatusFailed) {
			if out != "" {
				out += ","
			}
			out += string(cat)
		}
	}
	return out
}

func runPurge(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	n, err := j.Purge(cmd.Context(), time.Duration(purgeDays)*24*time.Hour)
	if err != nil {
		return fmt.Errorf("purge: %w", err)
	}

	fmt.Printf("Purged %d runs older than %d days\n", n, purgeDays)
	return nil
}

func runServiceInstall(_ *cobra.Command, _ []string) error {
	exePath, err := winsvc.ExePath()
	if err != nil {
		return err
	}

	svcArgs := []string{"run"}
	if cfgFile != "" {
		svcArgs = append(svcArgs, "--config", cfgFile)
	}

	if err := winsvc.Install(
		serviceName,
		"Tangra Sysinfo Agent",
		"Assembles periodic hardware snapshots from WMI.",
		exePath,
		svcArgs,
	); err != nil {
		return err
	}

	fmt.Printf("Service %s installed successfully\n", serviceName)
	return nil
}

func runServiceUninstall(_ *cobra.Command, _ []string) error {
	if err := winsvc.Uninstall(serviceName); err != nil {
		return err
	}
	fmt.Printf("Service %s uninstalled successfully\n", serviceName)
	return nil
}
