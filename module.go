package multisend

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ExecTransactionFromModule wraps tx in a call to the avatar's
// execTransactionFromModule(address,uint256,bytes,uint8), the entry point a
// module uses to make the avatar execute tx.
func ExecTransactionFromModule(avatar common.Address, tx MetaTransaction, opts ...Option) (MetaTransaction, error) {
	cfg := newConfig(opts)

	if !tx.Operation.Valid() {
		return MetaTransaction{}, fmt.Errorf("%w: %d", ErrInvalidOperation, tx.Operation)
	}
	value, err := toWord(tx.Value)
	if err != nil {
		return MetaTransaction{}, err
	}
	payload := tx.Data
	if payload == nil {
		payload = []byte{}
	}

	data, err := cfg.coder.EncodeCall(avatarABI, moduleCallMethod, tx.To, value.ToBig(), payload, uint8(tx.Operation))
	if err != nil {
		return MetaTransaction{}, fmt.Errorf("multisend: encoding module call: %w", err)
	}

	cfg.logger.Debug("wrapped module call",
		zap.Stringer("avatar", avatar),
		zap.Stringer("operation", tx.Operation),
		zap.Stringer("to", tx.To),
	)
	return MetaTransaction{Operation: Call, To: avatar, Value: new(big.Int), Data: data}, nil
}

// DecodeModuleCall recovers the transaction wrapped by
// ExecTransactionFromModule.
func DecodeModuleCall(call MetaTransaction, opts ...Option) (MetaTransaction, error) {
	cfg := newConfig(opts)

	method := avatarABI.Methods[moduleCallMethod]
	if len(call.Data) < 4 || !bytes.Equal(call.Data[:4], method.ID) {
		return MetaTransaction{}, fmt.Errorf("%w: selector is not %s", ErrMalformedModuleCall, method.Sig)
	}
	decoded, err := cfg.coder.DecodeCall(avatarABI, call.Data)
	if err != nil {
		return MetaTransaction{}, fmt.Errorf("%w: %w", ErrMalformedModuleCall, err)
	}
	if len(decoded.Args) != 4 {
		return MetaTransaction{}, fmt.Errorf("%w: expected 4 arguments, got %d", ErrMalformedModuleCall, len(decoded.Args))
	}

	to, ok1 := decoded.Args[0].(common.Address)
	value, ok2 := decoded.Args[1].(*big.Int)
	data, ok3 := decoded.Args[2].([]byte)
	op, ok4 := decoded.Args[3].(uint8)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return MetaTransaction{}, fmt.Errorf("%w: unexpected argument types", ErrMalformedModuleCall)
	}
	if !Operation(op).Valid() {
		return MetaTransaction{}, fmt.Errorf("%w: %w: %d", ErrMalformedModuleCall, ErrInvalidOperation, op)
	}
	if len(data) == 0 {
		data = nil
	}
	return MetaTransaction{Operation: Operation(op), To: to, Value: value, Data: data}, nil
}

// NewModuleBatch encodes txs as a multiSend batch and wraps it for execution
// by the avatar.
func NewModuleBatch(avatar, multiSend common.Address, txs []MetaTransaction, opts ...Option) (MetaTransaction, error) {
	batch, err := EncodeBatch(multiSend, txs, opts...)
	if err != nil {
		return MetaTransaction{}, err
	}
	return ExecTransactionFromModule(avatar, batch, opts...)
}
