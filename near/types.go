package near

import (
	"encoding/json"
	"fmt"

	"github.com/textileio/near-plugins/near/internal/types"
)

// AccessKeyWithPublicKey identifies a single access key of an account.
type AccessKeyWithPublicKey = types.AccessKeyWithPublicKey

// NodeVersion is the version of the node software.
type NodeVersion struct {
	Version string `json:"version"`
	Build   string `json:"build"`
}

// SyncInfo describes the sync state of a node.
type SyncInfo struct {
	LatestBlockHash     string `json:"latest_block_hash"`
	LatestBlockHeight   uint64 `json:"latest_block_height"`
	LatestStateRoot     string `json:"latest_state_root"`
	LatestBlockTime     string `json:"latest_block_time"`
	Syncing             bool   `json:"syncing"`
	EarliestBlockHash   string `json:"earliest_block_hash,omitempty"`
	EarliestBlockHeight uint64 `json:"earliest_block_height,omitempty"`
	EarliestBlockTime   string `json:"earliest_block_time,omitempty"`
	EpochID             string `json:"epoch_id,omitempty"`
	EpochStartHeight    uint64 `json:"epoch_start_height,omitempty"`
}

// ValidatorStatus is a validator entry of the status response. Nodes report
// validators either as bare account ids or as objects.
type ValidatorStatus struct {
	AccountID string `json:"account_id"`
	IsSlashed bool   `json:"is_slashed,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *ValidatorStatus) UnmarshalJSON(data []byte) error {
	var accountID string
	if err := json.Unmarshal(data, &accountID); err == nil {
		*v = ValidatorStatus{AccountID: accountID}
		return nil
	}
	type plain ValidatorStatus
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("unmarshaling validator: %v", err)
	}
	*v = ValidatorStatus(p)
	return nil
}

// NodeStatusResult is the result of the status RPC.
type NodeStatusResult struct {
	ChainID               string            `json:"chain_id"`
	RPCAddr               string            `json:"rpc_addr"`
	GenesisHash           string            `json:"genesis_hash,omitempty"`
	NodeKey               string            `json:"node_key,omitempty"`
	NodePublicKey         string            `json:"node_public_key,omitempty"`
	ValidatorAccountID    string            `json:"validator_account_id,omitempty"`
	SyncInfo              SyncInfo          `json:"sync_info"`
	Validators            []ValidatorStatus `json:"validators"`
	Version               NodeVersion       `json:"version"`
	ProtocolVersion       json.Number       `json:"protocol_version"`
	LatestProtocolVersion json.Number       `json:"latest_protocol_version"`
}

// BlockHeader is the header of a block.
type BlockHeader struct {
	Height                uint64    `json:"height"`
	PrevHeight            *uint64   `json:"prev_height,omitempty"`
	EpochID               string    `json:"epoch_id"`
	NextEpochID           string    `json:"next_epoch_id"`
	Hash                  string    `json:"hash"`
	PrevHash              string    `json:"prev_hash"`
	PrevStateRoot         string    `json:"prev_state_root"`
	ChunkReceiptsRoot     string    `json:"chunk_receipts_root"`
	ChunkHeadersRoot      string    `json:"chunk_headers_root"`
	ChunkTxRoot           string    `json:"chunk_tx_root"`
	OutcomeRoot           string    `json:"outcome_root"`
	ChunksIncluded        uint64    `json:"chunks_included"`
	ChallengesRoot        string    `json:"challenges_root"`
	Timestamp             uint64    `json:"timestamp"`
	TimestampNanosec      string    `json:"timestamp_nanosec"`
	RandomValue           string    `json:"random_value"`
	GasPrice              string    `json:"gas_price"`
	TotalSupply           string    `json:"total_supply"`
	LastFinalBlock        string    `json:"last_final_block"`
	LastDSFinalBlock      string    `json:"last_ds_final_block"`
	NextBPHash            string    `json:"next_bp_hash"`
	BlockMerkleRoot       string    `json:"block_merkle_root"`
	LatestProtocolVersion uint32    `json:"latest_protocol_version"`
	Approvals             []*string `json:"approvals"`
	Signature             string    `json:"signature"`
}

// ChunkHeader is the header of a chunk.
type ChunkHeader struct {
	ChunkHash            string            `json:"chunk_hash"`
	PrevBlockHash        string            `json:"prev_block_hash"`
	OutcomeRoot          string            `json:"outcome_root"`
	PrevStateRoot        string            `json:"prev_state_root"`
	EncodedMerkleRoot    string            `json:"encoded_merkle_root"`
	EncodedLength        uint64            `json:"encoded_length"`
	HeightCreated        uint64            `json:"height_created"`
	HeightIncluded       uint64            `json:"height_included"`
	ShardID              uint64            `json:"shard_id"`
	GasUsed              uint64            `json:"gas_used"`
	GasLimit             uint64            `json:"gas_limit"`
	ValidatorReward      string            `json:"validator_reward"`
	BalanceBurnt         string            `json:"balance_burnt"`
	OutgoingReceiptsRoot string            `json:"outgoing_receipts_root"`
	TxRoot               string            `json:"tx_root"`
	ValidatorProposals   []json.RawMessage `json:"validator_proposals"`
	Signature            string            `json:"signature"`
}

// BlockResult is the result of the block RPC.
type BlockResult struct {
	Author string        `json:"author"`
	Header BlockHeader   `json:"header"`
	Chunks []ChunkHeader `json:"chunks"`
}

// ChunkResult is the result of the chunk RPC.
type ChunkResult struct {
	Author       string            `json:"author"`
	Header       ChunkHeader       `json:"header"`
	Receipts     []json.RawMessage `json:"receipts"`
	Transactions []json.RawMessage `json:"transactions"`
}

// CurrentEpochValidatorInfo describes a validator of the current epoch.
type CurrentEpochValidatorInfo struct {
	AccountID         string   `json:"account_id"`
	PublicKey         string   `json:"public_key"`
	IsSlashed         bool     `json:"is_slashed"`
	Stake             string   `json:"stake"`
	Shards            []uint64 `json:"shards"`
	NumProducedBlocks uint64   `json:"num_produced_blocks"`
	NumExpectedBlocks uint64   `json:"num_expected_blocks"`
}

// NextEpochValidatorInfo describes a validator of the next epoch.
type NextEpochValidatorInfo struct {
	AccountID string   `json:"account_id"`
	PublicKey string   `json:"public_key"`
	Stake     string   `json:"stake"`
	Shards    []uint64 `json:"shards"`
}

// EpochValidatorInfo is the result of the validators RPC.
type EpochValidatorInfo struct {
	CurrentValidators []CurrentEpochValidatorInfo `json:"current_validators"`
	NextValidators    []NextEpochValidatorInfo    `json:"next_validators"`
	CurrentFishermen  []json.RawMessage           `json:"current_fishermen"`
	NextFishermen     []json.RawMessage           `json:"next_fishermen"`
	CurrentProposals  []json.RawMessage           `json:"current_proposals"`
	PrevEpochKickout  []json.RawMessage           `json:"prev_epoch_kickout"`
	EpochStartHeight  uint64                      `json:"epoch_start_height"`
	EpochHeight       uint64                      `json:"epoch_height"`
}

// GasPrice is the result of the gas_price RPC.
type GasPrice struct {
	GasPrice string `json:"gas_price"`
}

// MerklePathItem is a step of a merkle proof.
type MerklePathItem struct {
	Hash      string `json:"hash"`
	Direction string `json:"direction"`
}

// ExecutionOutcome is the outcome of a transaction or receipt.
type ExecutionOutcome struct {
	Logs        []string        `json:"logs"`
	ReceiptIDs  []string        `json:"receipt_ids"`
	GasBurnt    uint64          `json:"gas_burnt"`
	TokensBurnt string          `json:"tokens_burnt"`
	ExecutorID  string          `json:"executor_id"`
	Status      json.RawMessage `json:"status"`
}

// ExecutionOutcomeWithID is an ExecutionOutcome with its id and inclusion proof.
type ExecutionOutcomeWithID struct {
	ID        string           `json:"id"`
	BlockHash string           `json:"block_hash"`
	Outcome   ExecutionOutcome `json:"outcome"`
	Proof     []MerklePathItem `json:"proof"`
}

// FinalExecutionOutcome is the outcome of a transaction and all its receipts.
type FinalExecutionOutcome struct {
	// Status is either a string or an object keyed by SuccessValue,
	// SuccessReceiptId or Failure.
	Status             json.RawMessage          `json:"status"`
	Transaction        json.RawMessage          `json:"transaction"`
	TransactionOutcome ExecutionOutcomeWithID   `json:"transaction_outcome"`
	ReceiptsOutcome    []ExecutionOutcomeWithID `json:"receipts_outcome"`
	Receipts           []json.RawMessage        `json:"receipts,omitempty"`
}

// SuccessValue returns the base64 success value of the transaction, if any.
func (o *FinalExecutionOutcome) SuccessValue() (string, bool) {
	var status struct {
		SuccessValue *string `json:"SuccessValue"`
	}
	if err := json.Unmarshal(o.Status, &status); err != nil || status.SuccessValue == nil {
		return "", false
	}
	return *status.SuccessValue, true
}

// Failure returns the raw failure of the transaction, if any.
func (o *FinalExecutionOutcome) Failure() (json.RawMessage, bool) {
	var status struct {
		Failure json.RawMessage `json:"Failure"`
	}
	if err := json.Unmarshal(o.Status, &status); err != nil || len(status.Failure) == 0 {
		return nil, false
	}
	return status.Failure, true
}

// StateChangeCause is the cause of a state change.
type StateChangeCause struct {
	Type        string `json:"type"`
	TxHash      string `json:"tx_hash,omitempty"`
	ReceiptHash string `json:"receipt_hash,omitempty"`
}

// StateChange is a single state change with its cause. The shape of Change
// depends on Type.
type StateChange struct {
	Cause  StateChangeCause `json:"cause"`
	Type   string           `json:"type"`
	Change json.RawMessage  `json:"change"`
}

// DataChange is the Change of a data_update or data_deletion StateChange.
type DataChange struct {
	AccountID   string `json:"account_id"`
	KeyBase64   string `json:"key_base64"`
	ValueBase64 string `json:"value_base64,omitempty"`
}

// ChangeResult is the result of the EXPERIMENTAL_changes RPC.
type ChangeResult struct {
	BlockHash string        `json:"block_hash"`
	Changes   []StateChange `json:"changes"`
}

// BlockChange names an account changed in a block.
type BlockChange struct {
	Type      string `json:"type"`
	AccountID string `json:"account_id"`
}

// BlockChangeResult is the result of the EXPERIMENTAL_changes_in_block RPC.
type BlockChangeResult struct {
	BlockHash string        `json:"block_hash"`
	Changes   []BlockChange `json:"changes"`
}

// LightClientProofRequest requests a proof for a transaction or receipt outcome.
type LightClientProofRequest struct {
	Type            string `json:"type"`
	LightClientHead string `json:"light_client_head"`
	TransactionHash string `json:"transaction_hash,omitempty"`
	SenderID        string `json:"sender_id,omitempty"`
	ReceiptID       string `json:"receipt_id,omitempty"`
	ReceiverID      string `json:"receiver_id,omitempty"`
}

// BlockHeaderInnerLite is the light client view of a block header.
type BlockHeaderInnerLite struct {
	Height           uint64 `json:"height"`
	EpochID          string `json:"epoch_id"`
	NextEpochID      string `json:"next_epoch_id"`
	PrevStateRoot    string `json:"prev_state_root"`
	OutcomeRoot      string `json:"outcome_root"`
	Timestamp        uint64 `json:"timestamp"`
	TimestampNanosec string `json:"timestamp_nanosec"`
	NextBPHash       string `json:"next_bp_hash"`
	BlockMerkleRoot  string `json:"block_merkle_root"`
}

// LightClientBlockLiteView is a block header as seen by a light client.
type LightClientBlockLiteView struct {
	PrevBlockHash string               `json:"prev_block_hash"`
	InnerRestHash string               `json:"inner_rest_hash"`
	InnerLite     BlockHeaderInnerLite `json:"inner_lite"`
}

// LightClientProof is the result of the EXPERIMENTAL_light_client_proof RPC.
type LightClientProof struct {
	OutcomeProof     ExecutionOutcomeWithID   `json:"outcome_proof"`
	OutcomeRootProof []MerklePathItem         `json:"outcome_root_proof"`
	BlockHeaderLite  LightClientBlockLiteView `json:"block_header_lite"`
	BlockProof       []MerklePathItem         `json:"block_proof"`
}

// NextLightClientBlockRequest requests the light client block following LastBlockHash.
type NextLightClientBlockRequest struct {
	LastBlockHash string `json:"last_block_hash"`
}

// NextLightClientBlockResponse is the result of the next_light_client_block RPC.
type NextLightClientBlockResponse struct {
	PrevBlockHash      string               `json:"prev_block_hash"`
	NextBlockInnerHash string               `json:"next_block_inner_hash"`
	InnerLite          BlockHeaderInnerLite `json:"inner_lite"`
	InnerRestHash      string               `json:"inner_rest_hash"`
	NextBPs            []json.RawMessage    `json:"next_bps"`
	ApprovalsAfterNext []*string            `json:"approvals_after_next"`
}

// NearProtocolConfig is the result of the EXPERIMENTAL_protocol_config RPC.
type NearProtocolConfig struct {
	ChainID               string          `json:"chain_id"`
	GenesisHeight         uint64          `json:"genesis_height"`
	GenesisTime           string          `json:"genesis_time"`
	ProtocolVersion       uint32          `json:"protocol_version"`
	EpochLength           uint64          `json:"epoch_length"`
	NumBlockProducerSeats uint64          `json:"num_block_producer_seats"`
	MinGasPrice           string          `json:"min_gas_price"`
	MaxGasPrice           string          `json:"max_gas_price"`
	TotalSupply           string          `json:"total_supply,omitempty"`
	RuntimeConfig         json.RawMessage `json:"runtime_config"`
}

// QueryResponse is a base type used for responses to query requests.
type QueryResponse struct {
	BlockHash   string `json:"block_hash"`
	BlockHeight uint64 `json:"block_height"`
}

// AccountView holds information about an account.
type AccountView struct {
	QueryResponse
	Amount        string `json:"amount"`
	Locked        string `json:"locked"`
	CodeHash      string `json:"code_hash"`
	StorageUsage  uint64 `json:"storage_usage"`
	StoragePaidAt uint64 `json:"storage_paid_at"`
}

// StateItem models a state key-value pair, both base64 encoded.
type StateItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ViewStateResult holds information about contract state.
type ViewStateResult struct {
	QueryResponse
	Values []StateItem `json:"values"`
}

// FunctionCall provides information about the allowed function call.
type FunctionCall struct {
	Allowance   *string  `json:"allowance"`
	ReceiverID  string   `json:"receiver_id"`
	MethodNames []string `json:"method_names"`
}

// AccessKeyPermission is either full access or a function call permission.
type AccessKeyPermission struct {
	FullAccess   bool
	FunctionCall *FunctionCall
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *AccessKeyPermission) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "FullAccess" {
			return fmt.Errorf("unknown access key permission %q", s)
		}
		*p = AccessKeyPermission{FullAccess: true}
		return nil
	}
	var view struct {
		FunctionCall *FunctionCall `json:"FunctionCall"`
	}
	if err := json.Unmarshal(data, &view); err != nil {
		return fmt.Errorf("unmarshaling permission: %v", err)
	}
	*p = AccessKeyPermission{FunctionCall: view.FunctionCall}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p AccessKeyPermission) MarshalJSON() ([]byte, error) {
	if p.FullAccess {
		return json.Marshal("FullAccess")
	}
	return json.Marshal(struct {
		FunctionCall *FunctionCall `json:"FunctionCall"`
	}{p.FunctionCall})
}

// AccessKeyView contains information about an access key.
type AccessKeyView struct {
	QueryResponse
	Nonce      uint64              `json:"nonce"`
	Permission AccessKeyPermission `json:"permission"`
}

// AccessKeyInfo is an access key together with its public key.
type AccessKeyInfo struct {
	PublicKey string `json:"public_key"`
	AccessKey struct {
		Nonce      uint64              `json:"nonce"`
		Permission AccessKeyPermission `json:"permission"`
	} `json:"access_key"`
}

// AccessKeyList lists the access keys of an account.
type AccessKeyList struct {
	QueryResponse
	Keys []AccessKeyInfo `json:"keys"`
}

// ContractCodeView holds the deployed code of an account.
type ContractCodeView struct {
	QueryResponse
	CodeBase64 string `json:"code_base64"`
	Hash       string `json:"hash"`
}

// CallFunctionResult holds information about the result of a function call.
type CallFunctionResult struct {
	QueryResponse
	Result []byte   `json:"result"`
	Logs   []string `json:"logs"`
}
