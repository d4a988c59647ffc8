package multisend

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// DecodedCall is a payload matched against an ABI method.
type DecodedCall struct {
	Method abi.Method
	Args   []any
}

// Coder turns typed arguments into call data and back. The package never
// produces ABI encodings itself; every codec goes through a Coder.
type Coder interface {
	// EncodeCall packs the selector and arguments of the named method.
	// method is an ABI method name or a canonical signature.
	EncodeCall(contract abi.ABI, method string, args ...any) ([]byte, error)

	// DecodeCall resolves the method by selector and unpacks its inputs.
	// It returns ErrUnknownSelector when no method matches.
	DecodeCall(contract abi.ABI, data []byte) (*DecodedCall, error)
}

// DefaultCoder returns the go-ethereum backed Coder.
func DefaultCoder() Coder {
	return gethCoder{}
}

type gethCoder struct{}

func (gethCoder) EncodeCall(contract abi.ABI, method string, args ...any) ([]byte, error) {
	m, ok := FindMethod(contract, method)
	if !ok {
		return nil, &MethodNotFoundError{Method: method}
	}
	packed, err := m.Inputs.Pack(args...)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(m.ID)+len(packed))
	out = append(out, m.ID...)
	return append(out, packed...), nil
}

func (gethCoder) DecodeCall(contract abi.ABI, data []byte) (*DecodedCall, error) {
	methods := MethodsBySelector(contract, data)
	if len(methods) == 0 {
		return nil, ErrUnknownSelector
	}
	m := methods[0]
	args, err := m.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, fmt.Errorf("multisend: decoding %s: %w", m.Sig, err)
	}
	return &DecodedCall{Method: m, Args: args}, nil
}

// decodeExact decodes data against one known method and reports a match only
// when the payload is the canonical encoding of the decoded arguments.
// Trailing bytes after the arguments are tolerated.
func decodeExact(coder Coder, contract abi.ABI, method string, data []byte) ([]any, bool) {
	m, ok := contract.Methods[method]
	if !ok || len(data) < 4 || !bytes.Equal(data[:4], m.ID) {
		return nil, false
	}
	decoded, err := coder.DecodeCall(contract, data)
	if err != nil || decoded.Method.Sig != m.Sig {
		return nil, false
	}
	reencoded, err := coder.EncodeCall(contract, method, decoded.Args...)
	if err != nil || len(reencoded) > len(data) || !bytes.Equal(reencoded, data[:len(reencoded)]) {
		return nil, false
	}
	return decoded.Args, true
}
