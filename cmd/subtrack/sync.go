package main

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kushal311201/subtrack/internal/cli"
	"github.com/kushal311201/subtrack/internal/common"
	"github.com/kushal311201/subtrack/internal/model"
	"github.com/kushal311201/subtrack/internal/service"
	"github.com/kushal311201/subtrack/internal/syncer"
)

func syncCmd() *cobra.Command {
	var (
		endpoint string
		retry    bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync subscriptions with the remote endpoint",
		Long: `Push the local subscription set to the configured sync endpoint and
apply any updates it returns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewInterruptHandler(os.Stdout, "Sync")
			ctx := handler.HandleInterrupts(cmd.Context())

			if endpoint == "" {
				endpoint = viper.GetString("sync.endpoint")
			}
			if endpoint == "" {
				return common.NewUserError(
					"No sync endpoint configured. Set sync.endpoint in the config file or pass --endpoint.",
					common.ErrMissingConfig)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var bar *progressbar.ProgressBar
			gateway, err := syncer.NewGateway(endpoint, store,
				syncer.WithProgress(func(applied, total int) {
					if bar == nil {
						bar = progressbar.NewOptions(total,
							progressbar.OptionSetDescription("Applying updates"),
							progressbar.OptionSetWriter(os.Stdout),
							progressbar.OptionClearOnFinish())
					}
					_ = bar.Set(applied)
				}),
				syncer.WithObserver(func(subs []model.Subscription) {
					fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d subscriptions after sync", len(subs))))
				}))
			if err != nil {
				return err
			}

			result, err := runSync(ctx, gateway, retry)
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Synced %d subscriptions, applied %d updates",
				cli.SyncIcon, result.Pushed, result.UpdatesApplied)))
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "sync endpoint URL (default: sync.endpoint from config)")
	cmd.Flags().BoolVar(&retry, "retry", false, "retry the exchange on network failures")

	return cmd
}

// runSync performs one exchange, optionally retrying network failures with
// backoff. Update application is never retried blindly; a second attempt
// re-runs the whole exchange against current local state.
func runSync(ctx context.Context, gateway *syncer.Gateway, retry bool) (*syncer.SyncResult, error) {
	if !retry {
		return gateway.Sync(ctx)
	}

	var result *syncer.SyncResult
	err := common.WithRetry(ctx, func() error {
		var syncErr error
		result, syncErr = gateway.Sync(ctx)
		return syncErr
	}, service.RetryOptions{})
	return result, err
}
