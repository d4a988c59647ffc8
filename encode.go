package multisend

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"go.uber.org/zap"
)

// Encode builds the MetaTransaction described by t. The result always uses
// the Call operation. Malformed fields fail with an *EncodingError.
func Encode(t Transaction, opts ...Option) (MetaTransaction, error) {
	cfg := newConfig(opts)

	var (
		tx  MetaTransaction
		err error
	)
	switch v := t.(type) {
	case *TransferFunds:
		tx, err = encodeTransferFunds(cfg, v)
	case *TransferCollectible:
		tx, err = encodeTransferCollectible(cfg, v)
	case *CallContract:
		tx, err = encodeCallContract(cfg, v)
	case *RawTransaction:
		tx, err = encodeRaw(v)
	default:
		return MetaTransaction{}, fmt.Errorf("%w: %T", ErrUnknownTransactionType, t)
	}
	if err != nil {
		return MetaTransaction{}, err
	}

	cfg.logger.Debug("encoded transaction",
		zap.String("id", t.TransactionID()),
		zap.String("kind", string(t.Kind())),
		zap.Stringer("to", tx.To),
		zap.Int("dataBytes", len(tx.Data)),
	)
	return tx, nil
}

func encodeTransferFunds(cfg *config, t *TransferFunds) (MetaTransaction, error) {
	to, err := parseAddress(t.To)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "to", Err: err}
	}

	if t.IsNative() {
		amount, err := ParseUnits(t.Amount, EtherDecimals)
		if err != nil {
			return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "amount", Err: err}
		}
		return MetaTransaction{Operation: Call, To: to, Value: amount}, nil
	}

	token, err := parseAddress(t.Token)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "token", Err: err}
	}
	amount, err := ParseUnits(t.Amount, t.Decimals)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "amount", Err: err}
	}
	data, err := cfg.coder.EncodeCall(erc20ABI, erc20TransferMethod, to, amount)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Err: err}
	}
	return MetaTransaction{Operation: Call, To: token, Value: new(big.Int), Data: data}, nil
}

func encodeTransferCollectible(cfg *config, t *TransferCollectible) (MetaTransaction, error) {
	collection, err := parseAddress(t.Address)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "address", Err: err}
	}
	from, err := parseAddress(t.From)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "from", Err: err}
	}
	to, err := parseAddress(t.To)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "to", Err: err}
	}
	tokenID, err := ParseValue(t.TokenID)
	if err != nil || t.TokenID == "" {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "tokenId", Err: fmt.Errorf("%w: %q", ErrInvalidAmount, t.TokenID)}
	}
	data, err := cfg.coder.EncodeCall(erc721ABI, erc721TransferMethod, from, to, tokenID)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Err: err}
	}
	return MetaTransaction{Operation: Call, To: collection, Value: new(big.Int), Data: data}, nil
}

func encodeCallContract(cfg *config, t *CallContract) (MetaTransaction, error) {
	to, err := parseAddress(t.To)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "to", Err: err}
	}
	value, err := ParseValue(t.Value)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "value", Err: err}
	}
	contract, err := ParseABI(t.ABI)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "abi", Err: err}
	}
	method, ok := FindMethod(contract, t.FunctionSignature)
	if !ok {
		return MetaTransaction{}, &EncodingError{
			Kind:  t.Kind(),
			Field: "functionSignature",
			Err:   &MethodNotFoundError{Contract: to, Method: t.FunctionSignature},
		}
	}

	args, err := methodArgs(method, t.InputValues)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "inputValues", Err: err}
	}
	data, err := cfg.coder.EncodeCall(contract, method.Sig, args...)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Err: err}
	}
	return MetaTransaction{Operation: Call, To: to, Value: value, Data: data}, nil
}

// methodArgs converts input values into packable arguments. Inputs are looked
// up by name, falling back to their position; missing or empty inputs take
// the zero value of their type.
func methodArgs(method abi.Method, values map[string]any) ([]any, error) {
	args := make([]any, len(method.Inputs))
	for i, input := range method.Inputs {
		raw, ok := values[input.Name]
		if !ok || input.Name == "" {
			raw = values[strconv.Itoa(i)]
		}
		if s, isString := raw.(string); isString && s == "" {
			raw = nil
		}
		rv, err := coerceInput(input.Type, raw)
		if err != nil {
			return nil, &ArgumentError{Method: method.Name, Name: input.Name, Index: i, Err: err}
		}
		args[i] = rv.Interface()
	}
	return args, nil
}

func encodeRaw(t *RawTransaction) (MetaTransaction, error) {
	to, err := parseAddress(t.To)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "to", Err: err}
	}
	value, err := ParseValue(t.Value)
	if err != nil {
		return MetaTransaction{}, &EncodingError{Kind: t.Kind(), Field: "value", Err: err}
	}
	var data []byte
	if len(t.Data) > 0 {
		data = append([]byte{}, t.Data...)
	}
	return MetaTransaction{Operation: Call, To: to, Value: value, Data: data}, nil
}
