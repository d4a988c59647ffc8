package multisend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Operation selects how the avatar executes a call.
type Operation uint8

const (
	// Call executes in the callee's own storage context.
	Call Operation = iota

	// DelegateCall executes the callee's code in the caller's storage context.
	DelegateCall
)

// String returns the EVM opcode name of the operation.
func (o Operation) String() string {
	switch o {
	case Call:
		return "call"
	case DelegateCall:
		return "delegatecall"
	default:
		return fmt.Sprintf("operation(%d)", uint8(o))
	}
}

// Valid reports whether o is Call or DelegateCall.
func (o Operation) Valid() bool {
	return o == Call || o == DelegateCall
}

// MetaTransaction is a single call executed by an avatar: the parameters of
// execTransactionFromModule and the unit packed into a multiSend batch.
// A nil Value means zero. The zero Operation is Call.
//
// MetaTransaction is treated as immutable - modifier methods return copies.
type MetaTransaction struct {
	Operation Operation
	To        common.Address
	Value     *big.Int
	Data      []byte
}

// NewMetaTransaction creates a Call-mode transaction.
func NewMetaTransaction(to common.Address, value *big.Int, data []byte) MetaTransaction {
	tx := MetaTransaction{To: to, Operation: Call}
	if value != nil {
		tx.Value = new(big.Int).Set(value)
	}
	if len(data) > 0 {
		tx.Data = bytes.Clone(data)
	}
	return tx
}

// ValueOrZero returns the value, or a fresh zero if none is set.
func (tx MetaTransaction) ValueOrZero() *big.Int {
	if tx.Value == nil {
		return new(big.Int)
	}
	return tx.Value
}

// WithOperation returns a copy using the given operation.
func (tx MetaTransaction) WithOperation(op Operation) MetaTransaction {
	clone := tx.clone()
	clone.Operation = op
	return clone
}

// WithValue returns a copy carrying the given native value.
func (tx MetaTransaction) WithValue(amount *big.Int) MetaTransaction {
	clone := tx.clone()
	clone.Value = nil
	if amount != nil {
		clone.Value = new(big.Int).Set(amount)
	}
	return clone
}

// WithData returns a copy carrying the given call data.
func (tx MetaTransaction) WithData(data []byte) MetaTransaction {
	clone := tx.clone()
	clone.Data = bytes.Clone(data)
	return clone
}

// Selector returns the leading 4 bytes of the call data, if present.
func (tx MetaTransaction) Selector() ([4]byte, bool) {
	var sel [4]byte
	if len(tx.Data) < 4 {
		return sel, false
	}
	copy(sel[:], tx.Data[:4])
	return sel, true
}

// Equal reports whether two transactions describe the same call.
// A nil value equals zero and nil data equals empty data.
func (tx MetaTransaction) Equal(other MetaTransaction) bool {
	return tx.Operation == other.Operation &&
		tx.To == other.To &&
		tx.ValueOrZero().Cmp(other.ValueOrZero()) == 0 &&
		bytes.Equal(tx.Data, other.Data)
}

// clone creates a deep copy of the transaction.
func (tx MetaTransaction) clone() MetaTransaction {
	clone := tx
	if tx.Value != nil {
		clone.Value = new(big.Int).Set(tx.Value)
	}
	if tx.Data != nil {
		clone.Data = bytes.Clone(tx.Data)
	}
	return clone
}

type metaTransactionJSON struct {
	Operation Operation     `json:"operation"`
	To        string        `json:"to"`
	Value     string        `json:"value"`
	Data      hexutil.Bytes `json:"data"`
}

// MarshalJSON encodes the transaction with a checksummed address and a
// decimal value string.
func (tx MetaTransaction) MarshalJSON() ([]byte, error) {
	data := tx.Data
	if data == nil {
		data = []byte{}
	}
	return json.Marshal(metaTransactionJSON{
		Operation: tx.Operation,
		To:        tx.To.Hex(),
		Value:     FormatValue(tx.Value),
		Data:      data,
	})
}

// UnmarshalJSON decodes a transaction. The value may be decimal or 0x hex.
func (tx *MetaTransaction) UnmarshalJSON(input []byte) error {
	var dec metaTransactionJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if !dec.Operation.Valid() {
		return ErrInvalidOperation
	}
	to, err := parseAddress(dec.To)
	if err != nil {
		return err
	}
	value, err := ParseValue(dec.Value)
	if err != nil {
		return err
	}
	*tx = MetaTransaction{
		Operation: dec.Operation,
		To:        to,
		Value:     value,
		Data:      []byte(dec.Data),
	}
	return nil
}
