package multisend

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// EncodeBatch packs txs into a single multiSend(bytes) call addressed to the
// multiSend contract. The result is a DelegateCall carrying no value, ready to
// be executed by an avatar. The contract address varies by network and must
// be given explicitly.
func EncodeBatch(multiSend common.Address, txs []MetaTransaction, opts ...Option) (MetaTransaction, error) {
	if multiSend == (common.Address{}) {
		return MetaTransaction{}, ErrMissingMultiSend
	}
	cfg := newConfig(opts)

	var blob bytes.Buffer
	for i, tx := range txs {
		packed, err := PackTransaction(tx)
		if err != nil {
			return MetaTransaction{}, &RecordError{Index: i, Offset: blob.Len(), Err: err}
		}
		blob.Write(packed)
	}

	data, err := cfg.coder.EncodeCall(multiSendABI, multiSendMethod, blob.Bytes())
	if err != nil {
		return MetaTransaction{}, fmt.Errorf("multisend: encoding batch: %w", err)
	}

	cfg.logger.Debug("encoded batch",
		zap.Int("transactions", len(txs)),
		zap.Int("packedBytes", blob.Len()),
		zap.Stringer("multiSend", multiSend),
	)

	return MetaTransaction{
		Operation: DelegateCall,
		To:        multiSend,
		Value:     new(big.Int),
		Data:      data,
	}, nil
}

// DecodeBatch recovers the transactions packed into a multiSend(bytes) call.
// Only the call data is inspected; the operation, destination and value of tx
// are not checked.
func DecodeBatch(tx MetaTransaction, opts ...Option) ([]MetaTransaction, error) {
	cfg := newConfig(opts)

	blob, err := unwrapBatch(cfg.coder, tx.Data)
	if err != nil {
		return nil, err
	}

	var txs []MetaTransaction
	for offset := 0; offset < len(blob); {
		record, next, err := UnpackTransaction(blob, offset)
		if err != nil {
			return nil, &RecordError{Index: len(txs), Offset: offset, Err: err}
		}
		txs = append(txs, record)
		offset = next
	}

	cfg.logger.Debug("decoded batch",
		zap.Int("transactions", len(txs)),
		zap.Int("packedBytes", len(blob)),
	)
	return txs, nil
}

// unwrapBatch extracts the packed transactions argument of a multiSend call.
func unwrapBatch(coder Coder, data []byte) ([]byte, error) {
	method := multiSendABI.Methods[multiSendMethod]
	if len(data) < 4 || !bytes.Equal(data[:4], method.ID) {
		return nil, fmt.Errorf("%w: selector is not multiSend(bytes)", ErrMalformedBatch)
	}
	decoded, err := coder.DecodeCall(multiSendABI, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBatch, err)
	}
	if len(decoded.Args) != 1 {
		return nil, fmt.Errorf("%w: expected 1 argument, got %d", ErrMalformedBatch, len(decoded.Args))
	}
	blob, ok := decoded.Args[0].([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBatch, &TypeMismatchError{Expected: "bytes", Got: fmt.Sprintf("%T", decoded.Args[0])})
	}
	return blob, nil
}

// Batch accumulates transactions to be executed through multiSend.
type Batch struct {
	txs []MetaTransaction
}

// NewBatch creates an empty Batch.
func NewBatch() *Batch {
	return &Batch{
		txs: make([]MetaTransaction, 0, 8),
	}
}

// Add appends a transaction to the batch.
func (b *Batch) Add(tx MetaTransaction) *Batch {
	b.txs = append(b.txs, tx.clone())
	return b
}

// AddTransaction encodes t and appends the result to the batch.
func (b *Batch) AddTransaction(t Transaction, opts ...Option) error {
	tx, err := Encode(t, opts...)
	if err != nil {
		return err
	}
	b.txs = append(b.txs, tx)
	return nil
}

// Len returns the number of transactions in the batch.
func (b *Batch) Len() int {
	return len(b.txs)
}

// At returns the transaction at the given index.
func (b *Batch) At(i int) (MetaTransaction, bool) {
	if i < 0 || i >= len(b.txs) {
		return MetaTransaction{}, false
	}
	return b.txs[i].clone(), true
}

// ForEach iterates over the batch in order. Return false to stop iteration.
func (b *Batch) ForEach(fn func(int, MetaTransaction) bool) {
	for i, tx := range b.txs {
		if !fn(i, tx.clone()) {
			return
		}
	}
}

// Transactions returns a copy of the batched transactions.
func (b *Batch) Transactions() []MetaTransaction {
	out := make([]MetaTransaction, len(b.txs))
	for i, tx := range b.txs {
		out[i] = tx.clone()
	}
	return out
}

// Encode compiles the batch into a single multiSend call.
func (b *Batch) Encode(multiSend common.Address, opts ...Option) (MetaTransaction, error) {
	return EncodeBatch(multiSend, b.txs, opts...)
}
