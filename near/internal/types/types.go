package types

// BlockRequest selects a block. At most one field is set.
type BlockRequest struct {
	BlockID        interface{} `json:"block_id,omitempty"`
	Finality       string      `json:"finality,omitempty"`
	SyncCheckpoint string      `json:"sync_checkpoint,omitempty"`
}

// QueryRequest is used for RPC query requests.
type QueryRequest struct {
	RequestType  string  `json:"request_type"`
	AccountID    string  `json:"account_id,omitempty"`
	PublicKey    string  `json:"public_key,omitempty"`
	MethodName   string  `json:"method_name,omitempty"`
	ArgsBase64   *string `json:"args_base64,omitempty"`
	PrefixBase64 *string `json:"prefix_base64,omitempty"`
	IncludeProof bool    `json:"include_proof,omitempty"`
	BlockRequest
}

// AccessKeyWithPublicKey identifies a single access key of an account.
type AccessKeyWithPublicKey struct {
	AccountID string `json:"account_id"`
	PublicKey string `json:"public_key"`
}

// AccountChangesRequest is used for RPC changes requests keyed by account ids.
type AccountChangesRequest struct {
	ChangesType string   `json:"changes_type"`
	AccountIDs  []string `json:"account_ids"`
	BlockRequest
}

// KeyChangesRequest is used for RPC changes requests keyed by access keys.
type KeyChangesRequest struct {
	ChangesType string                   `json:"changes_type"`
	Keys        []AccessKeyWithPublicKey `json:"keys"`
	BlockRequest
}

// DataChangesRequest is used for RPC contract data changes requests.
type DataChangesRequest struct {
	ChangesType     string   `json:"changes_type"`
	AccountIDs      []string `json:"account_ids"`
	KeyPrefixBase64 string   `json:"key_prefix_base64"`
	BlockRequest
}
