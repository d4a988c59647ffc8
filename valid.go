package multisend

import (
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// IsValid reports whether t names well-formed addresses and can be encoded.
// It never panics; every failure is reported as false.
func IsValid(t Transaction, opts ...Option) (valid bool) {
	cfg := newConfig(opts)
	defer func() {
		if r := recover(); r != nil {
			cfg.logger.Debug("encoding panicked", zap.Any("panic", r))
			valid = false
		}
	}()

	if t == nil {
		return false
	}
	for _, addr := range addressFields(t) {
		if !common.IsHexAddress(addr) {
			return false
		}
	}
	if _, err := Encode(t, opts...); err != nil {
		cfg.logger.Debug("invalid transaction", zap.String("id", t.TransactionID()), zap.Error(err))
		return false
	}
	return true
}

// addressFields returns the destination-bearing fields of t.
func addressFields(t Transaction) []string {
	switch v := t.(type) {
	case *TransferFunds:
		if v.IsNative() {
			return []string{v.To}
		}
		return []string{v.To, v.Token}
	case *TransferCollectible:
		return []string{v.Address, v.To, v.From}
	case *CallContract:
		return []string{v.To}
	case *RawTransaction:
		return []string{v.To}
	}
	return nil
}
