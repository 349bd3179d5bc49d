package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/textileio/cli"
	"github.com/textileio/near-plugins/client"
	"github.com/textileio/near-plugins/metrics"
	"github.com/textileio/near-plugins/near"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
)

const watchPrefix = "nearrpc"

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Serve prometheus metrics about the NEAR and Aurora nodes",
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, args []string) {
		err := metrics.Setup(v.GetString("metrics-addr"))
		cli.CheckErrf("booting instrumentation: %v", err)

		nc := dial()
		newWatcher(nc, global.Meter(watchPrefix), v.GetDuration("timeout"))
		log.Infof("serving metrics at %s", v.GetString("metrics-addr"))

		cli.HandleInterrupt(func() {
			nc.Close()
			log.Info("Closed.")
		})
	},
}

type watcher struct {
	c       *client.Client
	timeout time.Duration
}

// newWatcher registers gauges on meter that are observed from c on every collection.
func newWatcher(c *client.Client, meter metric.Meter, timeout time.Duration) *watcher {
	w := &watcher{c: c, timeout: timeout}
	w.initMetrics(metric.Must(meter))
	return w
}

func (w *watcher) initMetrics(meter metric.MeterMust) {
	var (
		latestBlockHeight metric.Int64GaugeObserver
		latestBlockTime   metric.Int64GaugeObserver
		syncing           metric.Int64GaugeObserver
		gasPrice          metric.Int64GaugeObserver
		validatorCount    metric.Int64GaugeObserver
		auroraBlockNumber metric.Int64GaugeObserver
	)
	batchObs := meter.NewBatchObserver(func(ctx context.Context, result metric.BatchObserverResult) {
		ctx, cancel := context.WithTimeout(ctx, w.timeout)
		defer cancel()

		var obs []metric.Observation
		var attrs []attribute.KeyValue

		if w.c.Near != nil {
			// Node status metrics.
			status, err := w.c.Near.Status(ctx)
			if err != nil {
				log.Errorf("getting node status: %v", err)
			} else {
				attrs = append(attrs, attribute.String("chainId", status.ChainID))
				latest, err := time.Parse(time.RFC3339Nano, status.SyncInfo.LatestBlockTime)
				if err != nil {
					log.Errorf("parsing latest block time: %v", err)
				} else {
					obs = append(obs, latestBlockTime.Observation(latest.Unix()))
				}
				var isSyncing int64
				if status.SyncInfo.Syncing {
					isSyncing = 1
				}
				obs = append(
					obs,
					latestBlockHeight.Observation(int64(status.SyncInfo.LatestBlockHeight)),
					syncing.Observation(isSyncing),
				)
			}

			price, err := w.c.Near.GetGasPrice(ctx)
			if err != nil {
				log.Errorf("getting gas price: %v", err)
			} else if price.IsInt64() {
				obs = append(obs, gasPrice.Observation(price.Int64()))
			}

			validators, err := w.c.Near.Validators(ctx, near.BlockID{})
			if err != nil {
				log.Errorf("getting validators: %v", err)
			} else {
				obs = append(obs, validatorCount.Observation(int64(len(validators.CurrentValidators))))
			}
		}

		if w.c.Aurora != nil {
			height, err := w.c.Aurora.BlockNumber(ctx)
			if err != nil {
				log.Errorf("getting aurora block number: %v", err)
			} else {
				obs = append(obs, auroraBlockNumber.Observation(int64(height)))
			}
		}

		result.Observe(attrs, obs...)
	})
	latestBlockHeight = batchObs.NewInt64GaugeObserver(watchPrefix + ".latest_block_height")
	latestBlockTime = batchObs.NewInt64GaugeObserver(watchPrefix + ".latest_block_time")
	syncing = batchObs.NewInt64GaugeObserver(watchPrefix + ".syncing")
	gasPrice = batchObs.NewInt64GaugeObserver(watchPrefix + ".gas_price")
	validatorCount = batchObs.NewInt64GaugeObserver(watchPrefix + ".validator_count")
	auroraBlockNumber = batchObs.NewInt64GaugeObserver(watchPrefix + ".aurora_block_number")
}
