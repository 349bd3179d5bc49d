package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/textileio/cli"
	"github.com/textileio/near-plugins/aurora"
)

var auroraCmd = &cobra.Command{
	Use:   "aurora",
	Short: "Query the Aurora endpoint",
}

func init() {
	auroraCmd.AddCommand(
		auroraRawCmd("txpool-status", "Show the number of pending and queued transactions", (*aurora.Client).TxpoolStatus),
		auroraRawCmd("txpool-inspect", "Summarize the pending and queued transactions", (*aurora.Client).TxpoolInspect),
		auroraRawCmd("txpool-content", "Show the pending and queued transactions", (*aurora.Client).TxpoolContent),
		auroraRawCmd("pending", "Show the pending transactions", (*aurora.Client).ParityPendingTransactions),
		auroraBlockNumberCmd,
	)
}

func auroraRawCmd(
	use string,
	short string,
	call func(*aurora.Client, context.Context) (json.RawMessage, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			client := dial()
			defer client.Close()
			ctx, cancel := requestContext()
			defer cancel()

			res, err := call(client.Aurora, ctx)
			cli.CheckErrf(fmt.Sprintf("calling %s: %%v", use), err)
			printJSON(res)
		},
	}
}

var auroraBlockNumberCmd = &cobra.Command{
	Use:   "block-number",
	Short: "Show the latest block number",
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, args []string) {
		client := dial()
		defer client.Close()
		ctx, cancel := requestContext()
		defer cancel()

		res, err := client.Aurora.BlockNumber(ctx)
		cli.CheckErrf("getting block number: %v", err)
		fmt.Println(res)
	},
}
