package multisend

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Classify interprets tx as the most specific Transaction it matches, trying
// in order:
//
//  1. empty data (or the single zero byte): native TransferFunds
//  2. ERC-20 transfer(address,uint256) with zero value: token TransferFunds
//  3. ERC-721 safeTransferFrom(address,address,uint256) with zero value:
//     TransferCollectible
//  4. a method of the supplied ABI matching the selector: CallContract
//  5. otherwise RawTransaction carrying the data unchanged
//
// A transfer-shaped payload sent with value is never treated as a transfer.
// Errors are only returned for decimals outside 0..MaxDecimals and when the
// supplied ABI can't be obtained or parsed.
func Classify(tx MetaTransaction, id string, opts ...Option) (Transaction, error) {
	cfg := newConfig(opts)
	if err := checkDecimals(cfg.decimals); err != nil {
		return nil, err
	}
	log := cfg.logger.With(zap.String("id", id), zap.Stringer("to", tx.To))
	value := tx.ValueOrZero()

	if isEmptyData(tx.Data) {
		amount, err := FormatUnits(value, EtherDecimals)
		if err != nil {
			return nil, err
		}
		log.Debug("classified native transfer")
		return &TransferFunds{
			ID:       id,
			To:       tx.To.Hex(),
			Amount:   amount,
			Decimals: EtherDecimals,
		}, nil
	}

	if t, ok := matchTokenTransfer(cfg, tx, id); ok {
		log.Debug("classified token transfer")
		return t, nil
	}

	if t, ok := matchCollectibleTransfer(cfg, tx, id); ok {
		log.Debug("classified collectible transfer")
		return t, nil
	}

	abiJSON, err := cfg.resolveABI()
	if err != nil {
		return nil, fmt.Errorf("multisend: resolving ABI for %s: %w", tx.To.Hex(), err)
	}
	if abiJSON != "" {
		t, err := matchContractCall(cfg, tx, id, abiJSON)
		switch {
		case err == nil:
			log.Debug("classified contract call", zap.String("function", t.FunctionSignature))
			return t, nil
		case errors.Is(err, ErrUnknownSelector):
			log.Debug("selector not in ABI")
		case errors.Is(err, errABI):
			return nil, err
		default:
			log.Debug("arguments don't decode against ABI", zap.Error(err))
		}
	}

	log.Debug("classified raw transaction")
	return &RawTransaction{
		ID:    id,
		To:    tx.To.Hex(),
		Value: FormatValue(value),
		Data:  append([]byte{}, tx.Data...),
	}, nil
}

// isEmptyData reports whether data carries no call: empty, or the single
// zero byte some encoders emit for plain transfers.
func isEmptyData(data []byte) bool {
	return len(data) == 0 || (len(data) == 1 && data[0] == 0)
}

func matchTokenTransfer(cfg *config, tx MetaTransaction, id string) (*TransferFunds, bool) {
	args, ok := decodeExact(cfg.coder, erc20ABI, erc20TransferMethod, tx.Data)
	if !ok {
		return nil, false
	}
	if tx.ValueOrZero().Sign() != 0 {
		cfg.logger.Debug("token transfer shape carries value, not a transfer", zap.Stringer("to", tx.To))
		return nil, false
	}
	recipient, ok1 := args[0].(common.Address)
	amount, ok2 := args[1].(*big.Int)
	if !ok1 || !ok2 {
		return nil, false
	}
	formatted, err := FormatUnits(amount, cfg.decimals)
	if err != nil {
		return nil, false
	}
	return &TransferFunds{
		ID:       id,
		Token:    tx.To.Hex(),
		To:       recipient.Hex(),
		Amount:   formatted,
		Decimals: cfg.decimals,
	}, true
}

func matchCollectibleTransfer(cfg *config, tx MetaTransaction, id string) (*TransferCollectible, bool) {
	args, ok := decodeExact(cfg.coder, erc721ABI, erc721TransferMethod, tx.Data)
	if !ok {
		return nil, false
	}
	if tx.ValueOrZero().Sign() != 0 {
		cfg.logger.Debug("collectible transfer shape carries value, not a transfer", zap.Stringer("to", tx.To))
		return nil, false
	}
	from, ok1 := args[0].(common.Address)
	to, ok2 := args[1].(common.Address)
	tokenID, ok3 := args[2].(*big.Int)
	if !ok1 || !ok2 || !ok3 {
		return nil, false
	}
	return &TransferCollectible{
		ID:      id,
		Address: tx.To.Hex(),
		TokenID: tokenID.String(),
		To:      to.Hex(),
		From:    from.Hex(),
	}, true
}

var errABI = errors.New("multisend: invalid ABI")

func matchContractCall(cfg *config, tx MetaTransaction, id, abiJSON string) (*CallContract, error) {
	contract, err := ParseABI(abiJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errABI, err)
	}
	decoded, err := cfg.coder.DecodeCall(contract, tx.Data)
	if err != nil {
		return nil, err
	}
	return &CallContract{
		ID:                id,
		To:                tx.To.Hex(),
		Value:             FormatValue(tx.ValueOrZero()),
		ABI:               abiJSON,
		FunctionSignature: decoded.Method.Sig,
		InputValues:       inputValues(decoded.Method.Inputs, decoded.Args),
	}, nil
}

// inputValues keys decoded arguments by input name when every input has a
// distinct non-empty name, and by position otherwise.
func inputValues(inputs abi.Arguments, args []any) map[string]any {
	named := true
	seen := make(map[string]bool, len(inputs))
	for _, input := range inputs {
		if input.Name == "" || seen[input.Name] {
			named = false
			break
		}
		seen[input.Name] = true
	}

	values := make(map[string]any, len(inputs))
	for i, input := range inputs {
		if i >= len(args) {
			break
		}
		key := strconv.Itoa(i)
		if named {
			key = input.Name
		}
		values[key] = renderOutput(input.Type, args[i])
	}
	return values
}
