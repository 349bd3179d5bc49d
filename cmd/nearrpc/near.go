package main

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/textileio/cli"
	"github.com/textileio/near-plugins/keys"
	"github.com/textileio/near-plugins/near"
	"github.com/textileio/near-plugins/transaction"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the node status",
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, args []string) {
		client := dial()
		defer client.Close()
		ctx, cancel := requestContext()
		defer cancel()

		res, err := client.Near.Status(ctx)
		cli.CheckErrf("getting status: %v", err)
		printJSON(res)
	},
}

var blockCmd = &cobra.Command{
	Use:   "block [height|hash]",
	Short: "Show a block, by default the latest one with the configured finality",
	Args:  cobra.MaximumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		ref, err := blockReference(optionalArg(args), v.GetString("finality"))
		cli.CheckErr(err)

		client := dial()
		defer client.Close()
		ctx, cancel := requestContext()
		defer cancel()

		res, err := client.Near.Block(ctx, ref)
		cli.CheckErrf("getting block: %v", err)
		printJSON(res)
	},
}

var chunkCmd = &cobra.Command{
	Use:   "chunk <chunk-hash> | chunk <block> <shard-id>",
	Short: "Show a chunk",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(c *cobra.Command, args []string) {
		id := near.ChunkHash(args[0])
		if len(args) == 2 {
			shardID, err := strconv.ParseUint(args[1], 10, 64)
			cli.CheckErrf("parsing shard id: %v", err)
			id = near.ChunkInBlock(blockID(args[0]), shardID)
		}

		client := dial()
		defer client.Close()
		ctx, cancel := requestContext()
		defer cancel()

		res, err := client.Near.Chunk(ctx, id)
		cli.CheckErrf("getting chunk: %v", err)
		printJSON(res)
	},
}

var validatorsCmd = &cobra.Command{
	Use:   "validators [height|hash]",
	Short: "Show the validators of the epoch of a block, by default the latest one",
	Args:  cobra.MaximumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		client := dial()
		defer client.Close()
		ctx, cancel := requestContext()
		defer cancel()

		res, err := client.Near.Validators(ctx, blockID(optionalArg(args)))
		cli.CheckErrf("getting validators: %v", err)
		printJSON(res)
	},
}

var gasPriceCmd = &cobra.Command{
	Use:   "gas-price [height|hash]",
	Short: "Show the gas price of a block, by default the latest one",
	Args:  cobra.MaximumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		client := dial()
		defer client.Close()
		ctx, cancel := requestContext()
		defer cancel()

		res, err := client.Near.GasPrice(ctx, blockID(optionalArg(args)))
		cli.CheckErrf("getting gas price: %v", err)
		printJSON(res)
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance <account-id> [height|hash]",
	Short: "Show the balance of an account",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(c *cobra.Command, args []string) {
		ref, err := blockReference(optionalArg(args[1:]), v.GetString("finality"))
		cli.CheckErr(err)

		client := dial()
		defer client.Close()
		ctx, cancel := requestContext()
		defer cancel()

		balance, err := client.Near.GetBalance(ctx, args[0], ref)
		cli.CheckErrf("getting balance: %v", err)
		fmt.Println(formatBalance(balance))
	},
}

var txStatusCmd = &cobra.Command{
	Use:   "tx-status <tx-hash> <sender-id>",
	Short: "Show the status of a transaction",
	Args:  cobra.ExactArgs(2),
	Run: func(c *cobra.Command, args []string) {
		receipts, err := c.Flags().GetBool("receipts")
		cli.CheckErr(err)

		client := dial()
		defer client.Close()
		ctx, cancel := requestContext()
		defer cancel()

		hash := near.TxHashFromString(args[0])
		var res *near.FinalExecutionOutcome
		if receipts {
			res, err = client.Near.TxStatusReceipts(ctx, hash, args[1])
		} else {
			res, err = client.Near.TxStatus(ctx, hash, args[1])
		}
		cli.CheckErrf("getting transaction status: %v", err)
		printJSON(res)
	},
}

var syncingCmd = &cobra.Command{
	Use:   "syncing",
	Short: "Show the sync info of the node if it is syncing",
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, args []string) {
		client := dial()
		defer client.Close()
		ctx, cancel := requestContext()
		defer cancel()

		res, err := client.Near.IsSyncing(ctx)
		cli.CheckErrf("getting sync info: %v", err)
		if res == nil {
			fmt.Println("not syncing")
			return
		}
		printJSON(res)
	},
}

var coinbaseCmd = &cobra.Command{
	Use:   "coinbase",
	Short: "Show the validators known by the node",
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, args []string) {
		client := dial()
		defer client.Close()
		ctx, cancel := requestContext()
		defer cancel()

		res, err := client.Near.GetCoinbase(ctx)
		cli.CheckErrf("getting coinbase: %v", err)
		printJSON(res)
	},
}

var protocolConfigCmd = &cobra.Command{
	Use:   "protocol-config [height|hash]",
	Short: "Show the protocol config at a block",
	Args:  cobra.MaximumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		ref, err := blockReference(optionalArg(args), v.GetString("finality"))
		cli.CheckErr(err)

		client := dial()
		defer client.Close()
		ctx, cancel := requestContext()
		defer cancel()

		res, err := client.Near.ExperimentalProtocolConfig(ctx, ref)
		cli.CheckErrf("getting protocol config: %v", err)
		printJSON(res)
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer <receiver-id> <yocto-amount>",
	Short: "Transfer NEAR from the configured account",
	Args:  cobra.ExactArgs(2),
	Run: func(c *cobra.Command, args []string) {
		accountID := v.GetString("account-id")
		if accountID == "" {
			cli.CheckErr(fmt.Errorf("account-id is required"))
		}
		signer, err := keys.NewKeyPairFromString(v.GetString("private-key"))
		cli.CheckErrf("parsing private key: %v", err)
		amount, ok := new(big.Int).SetString(args[1], 10)
		if !ok || amount.Sign() < 0 {
			cli.CheckErr(fmt.Errorf("invalid amount %q", args[1]))
		}

		client := dial()
		defer client.Close()
		ctx, cancel := requestContext()
		defer cancel()

		log.Infof("transferring %s to %s", formatBalance(amount), args[0])
		res, err := client.Near.SignAndSendTransaction(
			ctx,
			signer,
			accountID,
			args[0],
			transaction.TransferAction(*amount),
		)
		cli.CheckErrf("sending transfer: %v", err)
		printJSON(res)
	},
}

func init() {
	txStatusCmd.Flags().Bool("receipts", false, "Include receipts")
}

var yoctoPerNear = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil))

// formatBalance renders a yoctoNEAR amount with its NEAR equivalent.
func formatBalance(yocto *big.Int) string {
	nearAmount, _ := new(big.Float).Quo(new(big.Float).SetInt(yocto), yoctoPerNear).Float64()
	return fmt.Sprintf("%s yoctoNEAR (%s NEAR)", humanize.BigComma(yocto), humanize.CommafWithDigits(nearAmount, 5))
}
