package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kushal311201/subtrack/internal/cli"
	"github.com/kushal311201/subtrack/internal/metrics"
	"github.com/kushal311201/subtrack/internal/notify"
	"github.com/kushal311201/subtrack/internal/reminder"
	"github.com/kushal311201/subtrack/internal/service"
	"github.com/kushal311201/subtrack/internal/syncer"
)

func remindCmd() *cobra.Command {
	var (
		watch       bool
		interval    string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Check for upcoming payments",
		Long: `Check every subscription against the reminder window and notify about
payments coming due. With --watch, keep running and check on a schedule.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			opts := []reminder.Option{
				reminder.WithNotifier(notify.NewDesktopNotifier(viper.GetString("notify.icon"))),
			}
			if emailSender := initEmailSender(); emailSender != nil {
				opts = append(opts, reminder.WithEmailSender(emailSender))
			}
			checker := reminder.NewChecker(store, opts...)

			if !watch {
				result, checkErr := checker.CheckUpcoming(ctx)
				if checkErr != nil {
					return checkErr
				}
				printCheckResult(result)
				return nil
			}

			return runWatch(cmd, store, checker, watchInterval(cmd, interval), metricsAddr)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and check on a schedule")
	cmd.Flags().StringVar(&interval, "interval", reminder.DefaultCheckSpec, "check schedule in cron syntax (with --watch)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (with --watch)")

	return cmd
}

// watchInterval resolves the check schedule: an explicit --interval flag
// wins, then the reminder.interval config key, then the built-in default.
func watchInterval(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("interval") {
		return flagValue
	}
	if configured := viper.GetString("reminder.interval"); configured != "" {
		return configured
	}
	return flagValue
}

// initEmailSender builds the email sender when an endpoint is configured,
// and nil otherwise. Reminder email is optional.
func initEmailSender() service.EmailSender {
	endpoint := viper.GetString("notify.email_endpoint")
	if endpoint == "" {
		return nil
	}

	client, err := notify.NewEmailClient(endpoint)
	if err != nil {
		slog.Warn("email notifications disabled", "error", err)
		return nil
	}
	return client
}

func runWatch(cmd *cobra.Command, store service.Storage, checker *reminder.Checker, interval, metricsAddr string) error {
	handler := cli.NewInterruptHandler(os.Stdout, "Reminder watch")
	ctx := handler.HandleInterrupts(cmd.Context())

	schedulerOpts := []reminder.SchedulerOption{
		reminder.WithCheckSpec(interval),
	}

	var collector *metrics.Collector
	if metricsAddr != "" {
		registry := prometheus.NewRegistry()
		collector = metrics.NewCollector(registry)
		schedulerOpts = append(schedulerOpts, reminder.WithResultObserver(func(result *reminder.CheckResult) {
			recordCheck(collector, result)
		}))

		server := &http.Server{
			Addr:              metricsAddr,
			Handler:           metrics.SetupMetricsRoute(registry),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("metrics listening", "addr", metricsAddr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics server failed", "error", err)
			}
		}()
		defer func() { _ = server.Close() }()
	}

	if syncScheduler := initSyncScheduler(store, collector); syncScheduler != nil {
		if err := syncScheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start sync scheduler: %w", err)
		}
		defer syncScheduler.Stop()
	}

	scheduler := reminder.NewScheduler(checker, schedulerOpts...)
	if err := scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	<-ctx.Done()
	scheduler.Stop()
	return nil
}

// initSyncScheduler builds the periodic sync for watch mode when a sync
// endpoint is configured, and nil otherwise. Background sync is optional.
func initSyncScheduler(store service.Storage, collector *metrics.Collector) *syncer.Scheduler {
	endpoint := viper.GetString("sync.endpoint")
	if endpoint == "" {
		return nil
	}

	gateway, err := syncer.NewGateway(endpoint, store)
	if err != nil {
		slog.Warn("background sync disabled", "error", err)
		return nil
	}

	var opts []syncer.SchedulerOption
	if spec := viper.GetString("sync.interval"); spec != "" {
		opts = append(opts, syncer.WithSyncSpec(spec))
	}
	if collector != nil {
		opts = append(opts, syncer.WithResultObserver(func(result *syncer.SyncResult, err error) {
			recordSync(collector, result, err)
		}))
	}
	return syncer.NewScheduler(gateway, opts...)
}

func recordCheck(collector *metrics.Collector, result *reminder.CheckResult) {
	if result == nil {
		collector.RecordCheckFailure()
		return
	}

	collector.RecordRemindersFired(result.Fired)
	for _, outcome := range result.Outcomes {
		if outcome.EmailErr != nil {
			collector.RecordEmailFailure()
		}
	}
}

func recordSync(collector *metrics.Collector, result *syncer.SyncResult, err error) {
	if err != nil {
		collector.RecordSyncFailure()
	} else {
		collector.RecordSyncSuccess()
	}
	if result != nil {
		collector.RecordUpdatesApplied(result.UpdatesApplied)
	}
}

func printCheckResult(result *reminder.CheckResult) {
	if result.Fired == 0 {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Checked %d subscriptions, nothing due soon.", result.Checked)))
		return
	}

	fmt.Println(cli.StyleTitle(fmt.Sprintf("%s %d payments coming up", cli.BellIcon, result.Fired)))
	for _, outcome := range result.Outcomes {
		day := "days"
		if outcome.DaysUntilDue == 1 {
			day = "day"
		}
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("  %s due in %d %s",
			outcome.Name, outcome.DaysUntilDue, day)))
	}
}
