package near

import (
	"context"
	"encoding/json"
)

// ChunkID identifies a chunk either by its hash or by a block and shard id.
type ChunkID struct {
	hash    string
	blockID BlockID
	shardID uint64
}

// ChunkHash returns a ChunkID for the chunk with the base58 hash.
func ChunkHash(hash string) ChunkID {
	return ChunkID{hash: hash}
}

// ChunkInBlock returns a ChunkID for the chunk of shardID in the given block.
func ChunkInBlock(blockID BlockID, shardID uint64) ChunkID {
	return ChunkID{blockID: blockID, shardID: shardID}
}

// MarshalJSON implements json.Marshaler.
func (c ChunkID) MarshalJSON() ([]byte, error) {
	if c.hash != "" {
		return json.Marshal(c.hash)
	}
	return json.Marshal([]interface{}{c.blockID, c.shardID})
}

// Status gets the node status.
func (c *Client) Status(ctx context.Context) (*NodeStatusResult, error) {
	var res NodeStatusResult
	if err := c.call(ctx, &res, "status"); err != nil {
		return nil, err
	}
	return &res, nil
}

// Block queries the block selected by ref.
func (c *Client) Block(ctx context.Context, ref BlockReference) (*BlockResult, error) {
	req, err := ref.request()
	if err != nil {
		return nil, err
	}
	var res BlockResult
	if err := c.callNamed(ctx, &res, "block", req); err != nil {
		return nil, err
	}
	return &res, nil
}

// BlockChanges queries the accounts changed in the block selected by ref.
func (c *Client) BlockChanges(ctx context.Context, ref BlockReference) (*BlockChangeResult, error) {
	req, err := ref.request()
	if err != nil {
		return nil, err
	}
	var res BlockChangeResult
	if err := c.callNamed(ctx, &res, "EXPERIMENTAL_changes_in_block", req); err != nil {
		return nil, err
	}
	return &res, nil
}

// Chunk queries a chunk, including its receipts and transactions.
func (c *Client) Chunk(ctx context.Context, id ChunkID) (*ChunkResult, error) {
	var res ChunkResult
	if err := c.call(ctx, &res, "chunk", id); err != nil {
		return nil, err
	}
	return &res, nil
}

// Validators queries the validators of the epoch of blockID. A zero BlockID
// queries the latest epoch.
func (c *Client) Validators(ctx context.Context, blockID BlockID) (*EpochValidatorInfo, error) {
	var res EpochValidatorInfo
	if err := c.call(ctx, &res, "validators", blockID); err != nil {
		return nil, err
	}
	return &res, nil
}

// ExperimentalProtocolConfig gets the protocol config at the block selected by
// ref. AtSyncCheckpoint("genesis") selects the genesis config.
func (c *Client) ExperimentalProtocolConfig(ctx context.Context, ref BlockReference) (*NearProtocolConfig, error) {
	req, err := ref.request()
	if err != nil {
		return nil, err
	}
	var res NearProtocolConfig
	if err := c.callNamed(ctx, &res, "EXPERIMENTAL_protocol_config", req); err != nil {
		return nil, err
	}
	return &res, nil
}

// LightClientProof gets a proof that a transaction or receipt outcome is
// included in the chain.
func (c *Client) LightClientProof(ctx context.Context, req LightClientProofRequest) (*LightClientProof, error) {
	var res LightClientProof
	if err := c.callNamed(ctx, &res, "EXPERIMENTAL_light_client_proof", req); err != nil {
		return nil, err
	}
	return &res, nil
}

// NextLightClientBlock returns the next light client block as far in the
// future as possible while still being verifiable from req.LastBlockHash.
func (c *Client) NextLightClientBlock(
	ctx context.Context,
	req NextLightClientBlockRequest,
) (*NextLightClientBlockResponse, error) {
	var res NextLightClientBlockResponse
	if err := c.callNamed(ctx, &res, "next_light_client_block", req); err != nil {
		return nil, err
	}
	return &res, nil
}

// GasPrice returns the gas price at blockID. A zero BlockID queries the latest block.
func (c *Client) GasPrice(ctx context.Context, blockID BlockID) (*GasPrice, error) {
	var res GasPrice
	if err := c.call(ctx, &res, "gas_price", blockID); err != nil {
		return nil, err
	}
	return &res, nil
}
