package multisend

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TransactionKind discriminates the variants of Transaction.
type TransactionKind string

const (
	// KindTransferFunds is a native currency or fungible token transfer.
	KindTransferFunds TransactionKind = "transferFunds"

	// KindTransferCollectible is a non-fungible token transfer.
	KindTransferCollectible TransactionKind = "transferCollectible"

	// KindCallContract is a call described by a contract ABI.
	KindCallContract TransactionKind = "callContract"

	// KindRaw is an unclassified call.
	KindRaw TransactionKind = "raw"
)

// Transaction is the semantic intent behind a MetaTransaction.
// This is a sealed interface - only types within this package implement it:
// *TransferFunds, *TransferCollectible, *CallContract and *RawTransaction.
type Transaction interface {
	// isTransaction is unexported to seal the interface.
	isTransaction()

	// Kind returns the variant discriminator.
	Kind() TransactionKind

	// TransactionID returns the caller supplied correlation id.
	TransactionID() string
}

// TransferFunds moves native currency (Token empty) or a fungible token.
// Amount is a decimal string denominated in Decimals; native transfers always
// use 18 decimals.
type TransferFunds struct {
	ID       string `json:"id"`
	Token    string `json:"token,omitempty"`
	To       string `json:"to"`
	Amount   string `json:"amount"`
	Decimals int    `json:"decimals"`
}

func (*TransferFunds) isTransaction() {}

// Kind returns KindTransferFunds.
func (*TransferFunds) Kind() TransactionKind { return KindTransferFunds }

// TransactionID returns the correlation id.
func (t *TransferFunds) TransactionID() string { return t.ID }

// IsNative reports whether the transfer moves native currency.
func (t *TransferFunds) IsNative() bool { return t.Token == "" }

// TransferCollectible moves one non-fungible token of collection Address.
type TransferCollectible struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	TokenID string `json:"tokenId"`
	To      string `json:"to"`
	From    string `json:"from"`
}

func (*TransferCollectible) isTransaction() {}

// Kind returns KindTransferCollectible.
func (*TransferCollectible) Kind() TransactionKind { return KindTransferCollectible }

// TransactionID returns the correlation id.
func (t *TransferCollectible) TransactionID() string { return t.ID }

// CallContract invokes FunctionSignature of the contract described by ABI.
// InputValues holds JSON-like values (string, bool, []any, map[string]any)
// keyed by input name, or by position when inputs are unnamed.
type CallContract struct {
	ID                string         `json:"id"`
	To                string         `json:"to"`
	Value             string         `json:"value"`
	ABI               string         `json:"abi"`
	FunctionSignature string         `json:"functionSignature"`
	InputValues       map[string]any `json:"inputValues"`
}

func (*CallContract) isTransaction() {}

// Kind returns KindCallContract.
func (*CallContract) Kind() TransactionKind { return KindCallContract }

// TransactionID returns the correlation id.
func (t *CallContract) TransactionID() string { return t.ID }

// RawTransaction is a call carried as-is.
type RawTransaction struct {
	ID    string        `json:"id"`
	To    string        `json:"to"`
	Value string        `json:"value"`
	Data  hexutil.Bytes `json:"data"`
}

func (*RawTransaction) isTransaction() {}

// Kind returns KindRaw.
func (*RawTransaction) Kind() TransactionKind { return KindRaw }

// TransactionID returns the correlation id.
func (t *RawTransaction) TransactionID() string { return t.ID }

// NewTransaction returns an empty transaction of the given kind.
func NewTransaction(kind TransactionKind, id string) (Transaction, error) {
	switch kind {
	case KindTransferFunds:
		return &TransferFunds{ID: id, Decimals: EtherDecimals}, nil
	case KindTransferCollectible:
		return &TransferCollectible{ID: id}, nil
	case KindCallContract:
		return &CallContract{ID: id, InputValues: map[string]any{}}, nil
	case KindRaw:
		return &RawTransaction{ID: id}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransactionType, kind)
	}
}

// MarshalTransaction encodes t as JSON with a "type" discriminator.
func MarshalTransaction(t Transaction) ([]byte, error) {
	var body any
	switch tx := t.(type) {
	case *TransferFunds:
		body = struct {
			Type TransactionKind `json:"type"`
			*TransferFunds
			Token *string `json:"token"`
		}{tx.Kind(), tx, nullable(tx.Token)}
	case *TransferCollectible:
		body = struct {
			Type TransactionKind `json:"type"`
			*TransferCollectible
		}{tx.Kind(), tx}
	case *CallContract:
		body = struct {
			Type TransactionKind `json:"type"`
			*CallContract
		}{tx.Kind(), tx}
	case *RawTransaction:
		body = struct {
			Type TransactionKind `json:"type"`
			*RawTransaction
		}{tx.Kind(), tx}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownTransactionType, t)
	}
	return json.Marshal(body)
}

// UnmarshalTransaction decodes JSON produced by MarshalTransaction.
// A null or missing token decodes as a native transfer.
func UnmarshalTransaction(data []byte) (Transaction, error) {
	var head struct {
		Type TransactionKind `json:"type"`
		ID   string          `json:"id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	t, err := NewTransaction(head.Type, head.ID)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(t); err != nil {
		return nil, err
	}
	return t, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
