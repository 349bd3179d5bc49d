package transaction

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/near/borsh-go"
	"github.com/textileio/near-plugins/keys"
)

// Signature is a curve-tagged ed25519 signature.
type Signature struct {
	KeyType uint8
	Data    [64]byte
}

// SignedTransaction is a Transaction together with its signature.
type SignedTransaction struct {
	Transaction Transaction
	Signature   Signature
}

// Encode returns the borsh serialization of the signed transaction.
func (st *SignedTransaction) Encode() ([]byte, error) {
	bytes, err := borsh.Serialize(*st)
	if err != nil {
		return nil, fmt.Errorf("serializing signed transaction: %v", err)
	}
	return bytes, nil
}

// Transaction is the borsh schema of a NEAR transaction.
type Transaction struct {
	SignerID   string
	PublicKey  PublicKey
	Nonce      uint64
	ReceiverID string
	BlockHash  [32]byte
	Actions    []Action
}

// PublicKey is the serializable form of keys.PublicKey.
type PublicKey struct {
	KeyType uint8
	Data    [32]byte
}

// AccessKey describes the nonce and permission of a key added to an account.
type AccessKey struct {
	Nonce      uint64
	Permission AccessKeyPermission
}

// AccessKeyPermission is either a FunctionCallPermission or FullAccess.
type AccessKeyPermission struct {
	Enum         borsh.Enum `borsh_enum:"true"`
	FunctionCall FunctionCallPermission
	FullAccess   FullAccessPermission
}

// FunctionCallPermission restricts a key to calling methods on one receiver.
type FunctionCallPermission struct {
	Allowance   *big.Int
	ReceiverID  string
	MethodNames []string
}

// FullAccessPermission grants every action.
type FullAccessPermission struct{}

// Action is the enum of transaction actions.
type Action struct {
	Enum           borsh.Enum `borsh_enum:"true"`
	CreateAccount  CreateAccount
	DeployContract DeployContract
	FunctionCall   FunctionCall
	Transfer       Transfer
	Stake          Stake
	AddKey         AddKey
	DeleteKey      DeleteKey
	DeleteAccount  DeleteAccount
}

// CreateAccount creates the receiver account.
type CreateAccount struct{}

// DeployContract deploys wasm code to the receiver.
type DeployContract struct {
	Code []byte
}

// FunctionCall calls a method on the receiver contract.
type FunctionCall struct {
	MethodName string
	Args       []byte
	Gas        uint64
	Deposit    big.Int
}

// Transfer moves yoctoNEAR to the receiver.
type Transfer struct {
	Deposit big.Int
}

// Stake stakes with the given validator key.
type Stake struct {
	Stake     big.Int
	PublicKey PublicKey
}

// AddKey adds an access key.
type AddKey struct {
	PublicKey PublicKey
	AccessKey AccessKey
}

// DeleteKey deletes an access key.
type DeleteKey struct {
	PublicKey PublicKey
}

// DeleteAccount deletes the receiver, sending the remaining balance to BeneficiaryID.
type DeleteAccount struct {
	BeneficiaryID string
}

// FullAccessKey returns an AccessKey with full access permission.
func FullAccessKey() AccessKey {
	return AccessKey{Permission: AccessKeyPermission{Enum: 1}}
}

// FunctionCallAccessKey returns an AccessKey limited to calling methodNames on receiverID.
// A nil allowance means unlimited.
func FunctionCallAccessKey(receiverID string, methodNames []string, allowance *big.Int) AccessKey {
	return AccessKey{
		Permission: AccessKeyPermission{
			Enum: 0,
			FunctionCall: FunctionCallPermission{
				Allowance:   allowance,
				ReceiverID:  receiverID,
				MethodNames: methodNames,
			},
		},
	}
}

func CreateAccountAction() Action {
	return Action{Enum: 0, CreateAccount: CreateAccount{}}
}

func DeployContractAction(code []byte) Action {
	return Action{Enum: 1, DeployContract: DeployContract{Code: code}}
}

func FunctionCallAction(methodName string, args []byte, gas uint64, deposit big.Int) Action {
	return Action{
		Enum: 2,
		FunctionCall: FunctionCall{
			MethodName: methodName,
			Args:       args,
			Gas:        gas,
			Deposit:    deposit,
		},
	}
}

func TransferAction(deposit big.Int) Action {
	return Action{Enum: 3, Transfer: Transfer{Deposit: deposit}}
}

func StakeAction(stake big.Int, publicKey keys.PublicKey) Action {
	return Action{
		Enum: 4,
		Stake: Stake{
			Stake:     stake,
			PublicKey: NewPublicKey(publicKey),
		},
	}
}

func AddKeyAction(publicKey keys.PublicKey, accessKey AccessKey) Action {
	return Action{
		Enum: 5,
		AddKey: AddKey{
			PublicKey: NewPublicKey(publicKey),
			AccessKey: accessKey,
		},
	}
}

func DeleteKeyAction(publicKey keys.PublicKey) Action {
	return Action{
		Enum: 6,
		DeleteKey: DeleteKey{
			PublicKey: NewPublicKey(publicKey),
		},
	}
}

func DeleteAccountAction(beneficiaryID string) Action {
	return Action{
		Enum: 7,
		DeleteAccount: DeleteAccount{
			BeneficiaryID: beneficiaryID,
		},
	}
}

// NewPublicKey converts a keys.PublicKey into its serializable form.
func NewPublicKey(publicKey keys.PublicKey) PublicKey {
	var data [32]byte
	copy(data[:], publicKey.Data)
	return PublicKey{
		KeyType: uint8(publicKey.Type),
		Data:    data,
	}
}

// NewTransaction creates a new Transaction.
func NewTransaction(
	signerID string,
	publicKey keys.PublicKey,
	nonce uint64,
	receiverID string,
	blockHash []byte,
	actions []Action,
) *Transaction {
	var blockHashArr [32]byte
	copy(blockHashArr[:], blockHash)
	return &Transaction{
		SignerID:   signerID,
		PublicKey:  NewPublicKey(publicKey),
		Nonce:      nonce,
		ReceiverID: receiverID,
		BlockHash:  blockHashArr,
		Actions:    actions,
	}
}

// SignTransaction serializes and signs a Transaction using the provided signer.
// It returns the transaction hash together with the signed transaction.
func SignTransaction(transaction Transaction, signer keys.KeyPair) ([]byte, *SignedTransaction, error) {
	message, err := borsh.Serialize(transaction)
	if err != nil {
		return nil, nil, fmt.Errorf("serializing transaction: %v", err)
	}
	hash := sha256.Sum256(message)
	sig, err := signer.Sign(hash[:])
	if err != nil {
		return nil, nil, fmt.Errorf("signing hash: %v", err)
	}
	var data [64]byte
	copy(data[:], sig)
	st := &SignedTransaction{
		Transaction: transaction,
		Signature: Signature{
			KeyType: transaction.PublicKey.KeyType,
			Data:    data,
		},
	}
	return hash[:], st, nil
}
