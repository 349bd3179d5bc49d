package near

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/textileio/near-plugins/near/internal/types"
)

// Finality is the consistency level requested for a block.
type Finality string

const (
	// FinalityOptimistic uses the latest block recorded on the node.
	FinalityOptimistic Finality = "optimistic"
	// FinalityNearFinal uses a block that is unlikely to be reverted.
	FinalityNearFinal Finality = "near-final"
	// FinalityFinal uses the latest block finalized by the network.
	FinalityFinal Finality = "final"
)

// BlockID identifies a block by height or by hash. The zero value means the
// latest block and encodes as JSON null.
type BlockID struct {
	value interface{}
}

// BlockHeight returns a BlockID for the block at height.
func BlockHeight(height uint64) BlockID {
	return BlockID{value: height}
}

// BlockHash returns a BlockID for the block with the base58 hash.
func BlockHash(hash string) BlockID {
	return BlockID{value: hash}
}

// IsZero reports whether the BlockID refers to the latest block.
func (b BlockID) IsZero() bool {
	return b.value == nil
}

// MarshalJSON implements json.Marshaler.
func (b BlockID) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *BlockID) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		b.value = nil
	case string:
		b.value = val
	case float64:
		height, err := strconv.ParseUint(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("parsing block height: %v", err)
		}
		b.value = height
	default:
		return fmt.Errorf("unexpected block id %s", string(data))
	}
	return nil
}

func (b BlockID) String() string {
	if b.value == nil {
		return "latest"
	}
	return fmt.Sprint(b.value)
}

// BlockReference selects a block either by id, by finality, or by sync
// checkpoint. Only one selector can be set; use the At* constructors.
type BlockReference struct {
	blockID        BlockID
	finality       Finality
	syncCheckpoint string
}

// AtBlock references the block with the given id.
func AtBlock(id BlockID) BlockReference {
	return BlockReference{blockID: id}
}

// AtHeight references the block at height.
func AtHeight(height uint64) BlockReference {
	return AtBlock(BlockHeight(height))
}

// AtHash references the block with the base58 hash.
func AtHash(hash string) BlockReference {
	return AtBlock(BlockHash(hash))
}

// AtFinality references the latest block with the given finality.
func AtFinality(f Finality) BlockReference {
	return BlockReference{finality: f}
}

// AtSyncCheckpoint references a sync checkpoint such as "genesis" or
// "earliest_available".
func AtSyncCheckpoint(checkpoint string) BlockReference {
	return BlockReference{syncCheckpoint: checkpoint}
}

// IsZero reports whether no selector is set.
func (r BlockReference) IsZero() bool {
	return r.blockID.IsZero() && r.finality == "" && r.syncCheckpoint == ""
}

func (r BlockReference) String() string {
	switch {
	case !r.blockID.IsZero():
		return "block_id=" + r.blockID.String()
	case r.finality != "":
		return "finality=" + string(r.finality)
	case r.syncCheckpoint != "":
		return "sync_checkpoint=" + r.syncCheckpoint
	default:
		return "none"
	}
}

func (r BlockReference) request() (types.BlockRequest, error) {
	if r.IsZero() {
		return types.BlockRequest{}, ErrMissingBlockReference
	}
	req := types.BlockRequest{
		Finality:       string(r.finality),
		SyncCheckpoint: r.syncCheckpoint,
	}
	if !r.blockID.IsZero() {
		req.BlockID = r.blockID.value
	}
	return req, nil
}
