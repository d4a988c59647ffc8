package multisend

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for common failure conditions.
var (
	// ErrValueOutOfRange indicates a value is negative or does not fit in 256 bits.
	ErrValueOutOfRange = errors.New("multisend: value out of uint256 range")

	// ErrTruncatedInput indicates a packed record declares more bytes than remain.
	ErrTruncatedInput = errors.New("multisend: truncated input")

	// ErrMalformedBatch indicates call data is not a multiSend(bytes) call.
	ErrMalformedBatch = errors.New("multisend: malformed batch")

	// ErrMalformedModuleCall indicates call data is not an execTransactionFromModule call.
	ErrMalformedModuleCall = errors.New("multisend: malformed module call")

	// ErrMissingMultiSend indicates no batch-execution contract address was given.
	ErrMissingMultiSend = errors.New("multisend: multiSend contract address required")

	// ErrInvalidOperation indicates an operation other than Call or DelegateCall.
	ErrInvalidOperation = errors.New("multisend: invalid operation")

	// ErrUnknownSelector indicates no method in an ABI matches the payload selector.
	ErrUnknownSelector = errors.New("multisend: unknown function selector")

	// ErrUnknownFunction indicates a function signature is not present in the ABI.
	ErrUnknownFunction = errors.New("multisend: unknown function")

	// ErrInvalidAddress indicates a string is not a 20-byte hex address.
	ErrInvalidAddress = errors.New("multisend: invalid address")

	// ErrInvalidAmount indicates a string is not a valid amount or value.
	ErrInvalidAmount = errors.New("multisend: invalid amount")

	// ErrUnknownTransactionType indicates an unsupported transaction kind.
	ErrUnknownTransactionType = errors.New("multisend: unknown transaction type")
)

// MethodNotFoundError indicates the ABI doesn't have the requested method.
type MethodNotFoundError struct {
	Contract common.Address
	Method   string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("multisend: method %q not found in contract %s", e.Method, e.Contract.Hex())
}

func (e *MethodNotFoundError) Unwrap() error {
	return ErrUnknownFunction
}

// ArgumentError indicates an issue with a function argument.
type ArgumentError struct {
	Method string
	Name   string
	Index  int
	Err    error
}

func (e *ArgumentError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("multisend: argument %d (%s) for method %q: %v", e.Index, e.Name, e.Method, e.Err)
	}
	return fmt.Sprintf("multisend: argument %d for method %q: %v", e.Index, e.Method, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// TypeMismatchError indicates a value's type doesn't match the expected parameter type.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("multisend: type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// RecordError wraps a failure to unpack one record of a batch.
// It matches both ErrMalformedBatch and the underlying cause.
type RecordError struct {
	Index  int
	Offset int
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("multisend: record %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrMalformedBatch, e.Err}
}

// EncodingError indicates a transaction could not be turned into call data.
type EncodingError struct {
	Kind  TransactionKind
	Field string
	Err   error
}

func (e *EncodingError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("multisend: encoding %s: field %q: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("multisend: encoding %s: %v", e.Kind, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
