package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/textileio/cli"
	logging "github.com/textileio/go-log/v2"
	"github.com/textileio/near-plugins/client"
	"github.com/textileio/near-plugins/near"
)

var (
	cliName = "nearrpc"
	log     = logging.Logger(cliName)
	v       = viper.New()
)

var flags = []cli.Flag{
	{Name: "near-endpoint", DefValue: "https://rpc.testnet.near.org", Description: "NEAR JSON-RPC endpoint"},
	{Name: "aurora-endpoint", DefValue: "https://testnet.aurora.dev", Description: "Aurora JSON-RPC endpoint"},
	{Name: "timeout", DefValue: "30s", Description: "Timeout of each request"},
	{Name: "finality", DefValue: "final", Description: "Finality used when no block is given (optimistic, near-final, final)"},
	{Name: "account-id", DefValue: "", Description: "Account id used to sign transactions"},
	{Name: "private-key", DefValue: "", Description: "Private key used to sign transactions, as ed25519:<base58>"},
	{Name: "metrics-addr", DefValue: ":9090", Description: "Prometheus listen address of the watch command"},
	{Name: "log-debug", DefValue: false, Description: "Enable debug level logging"},
	{Name: "log-json", DefValue: false, Description: "Enable structured logging"},
}

func init() {
	cli.ConfigureCLI(v, "NEARRPC", flags, rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		statusCmd,
		blockCmd,
		chunkCmd,
		validatorsCmd,
		gasPriceCmd,
		balanceCmd,
		txStatusCmd,
		syncingCmd,
		coinbaseCmd,
		protocolConfigCmd,
		transferCmd,
		auroraCmd,
		watchCmd,
	)
}

var rootCmd = &cobra.Command{
	Use:   cliName,
	Short: "nearrpc queries NEAR and Aurora nodes over JSON-RPC",
	Long:  `nearrpc queries NEAR and Aurora nodes over JSON-RPC`,
	PersistentPreRun: func(c *cobra.Command, args []string) {
		cli.ExpandEnvVars(v, v.AllSettings())
		err := cli.ConfigureLogging(v, nil)
		cli.CheckErrf("setting log levels: %v", err)

		settings, err := cli.MarshalConfig(v, !v.GetBool("log-json"), "private-key")
		cli.CheckErrf("marshaling config: %v", err)
		log.Debugf("loaded config: %s", string(settings))
	},
}

func dial() *client.Client {
	ctx, cancel := context.WithTimeout(context.Background(), v.GetDuration("timeout"))
	defer cancel()
	c, err := client.Dial(ctx, client.Config{
		NearEndpoint:   v.GetString("near-endpoint"),
		AuroraEndpoint: v.GetString("aurora-endpoint"),
		DialTimeout:    v.GetDuration("timeout"),
		Instrument:     true,
	})
	cli.CheckErrf("dialing endpoints: %v", err)
	return c
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), v.GetDuration("timeout"))
}

// blockReference parses a block height or hash, falling back to finality
// when arg is empty.
func blockReference(arg string, finality string) (near.BlockReference, error) {
	if arg == "" {
		switch f := near.Finality(finality); f {
		case near.FinalityOptimistic, near.FinalityNearFinal, near.FinalityFinal:
			return near.AtFinality(f), nil
		default:
			return near.BlockReference{}, fmt.Errorf("unknown finality %q", finality)
		}
	}
	return near.AtBlock(blockID(arg)), nil
}

// blockID parses a block height or hash. An empty arg is the latest block.
func blockID(arg string) near.BlockID {
	if arg == "" {
		return near.BlockID{}
	}
	if height, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return near.BlockHeight(height)
	}
	return near.BlockHash(arg)
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func printJSON(res interface{}) {
	bytes, err := json.MarshalIndent(res, "", "  ")
	cli.CheckErrf("marshaling result: %v", err)
	fmt.Println(string(bytes))
}

func main() {
	cli.CheckErrf("executing root cmd: %v", rootCmd.Execute())
}
