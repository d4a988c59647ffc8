package multisend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrValueOutOfRange", ErrValueOutOfRange, "multisend: value out of uint256 range"},
		{"ErrTruncatedInput", ErrTruncatedInput, "multisend: truncated input"},
		{"ErrMalformedBatch", ErrMalformedBatch, "multisend: malformed batch"},
		{"ErrMalformedModuleCall", ErrMalformedModuleCall, "multisend: malformed module call"},
		{"ErrMissingMultiSend", ErrMissingMultiSend, "multisend: multiSend contract address required"},
		{"ErrInvalidOperation", ErrInvalidOperation, "multisend: invalid operation"},
		{"ErrUnknownSelector", ErrUnknownSelector, "multisend: unknown function selector"},
		{"ErrUnknownFunction", ErrUnknownFunction, "multisend: unknown function"},
		{"ErrInvalidAddress", ErrInvalidAddress, "multisend: invalid address"},
		{"ErrInvalidAmount", ErrInvalidAmount, "multisend: invalid amount"},
		{"ErrUnknownTransactionType", ErrUnknownTransactionType, "multisend: unknown transaction type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestMethodNotFoundError(t *testing.T) {
	err := &MethodNotFoundError{Contract: addrA, Method: "transfer"}

	assert.Equal(t, `multisend: method "transfer" not found in contract 0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984`, err.Error())
	assert.ErrorIs(t, err, ErrUnknownFunction)
}

func TestArgumentError(t *testing.T) {
	t.Run("with name", func(t *testing.T) {
		inner := errors.New("invalid type")
		err := &ArgumentError{Method: "add", Name: "a", Index: 1, Err: inner}

		assert.Equal(t, `multisend: argument 1 (a) for method "add": invalid type`, err.Error())
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("without name", func(t *testing.T) {
		err := &ArgumentError{Method: "add", Index: 0, Err: ErrInvalidAmount}

		assert.Equal(t, `multisend: argument 0 for method "add": multisend: invalid amount`, err.Error())
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestTypeMismatchError(t *testing.T) {
	err := &TypeMismatchError{Expected: "uint256", Got: "bool"}
	assert.Equal(t, "multisend: type mismatch: expected uint256, got bool", err.Error())
}

func TestRecordError(t *testing.T) {
	err := &RecordError{Index: 2, Offset: 170, Err: ErrTruncatedInput}

	assert.Equal(t, "multisend: record 2 at offset 170: multisend: truncated input", err.Error())
	assert.ErrorIs(t, err, ErrMalformedBatch)
	assert.ErrorIs(t, err, ErrTruncatedInput)
	assert.NotErrorIs(t, err, ErrValueOutOfRange)

	var target *RecordError
	wrapped := errors.Join(errors.New("context"), err)
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, 2, target.Index)
}

func TestEncodingError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &EncodingError{Kind: KindTransferFunds, Field: "to", Err: ErrInvalidAddress}

		assert.Equal(t, `multisend: encoding transferFunds: field "to": multisend: invalid address`, err.Error())
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("without field", func(t *testing.T) {
		err := &EncodingError{Kind: KindRaw, Err: ErrInvalidAmount}

		assert.Equal(t, "multisend: encoding raw: multisend: invalid amount", err.Error())
	})
}
