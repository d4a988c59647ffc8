package multisend

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/shopspring/decimal"
)

// EtherDecimals is the number of decimals of the native currency.
const EtherDecimals = 18

// MaxDecimals bounds the decimals accepted by ParseUnits and FormatUnits.
const MaxDecimals = 256

// ParseValue parses a non-negative integer given in decimal or 0x-prefixed
// hex. An empty string is zero.
func ParseValue(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrValueOutOfRange, s)
	}
	return v, nil
}

// FormatValue renders v as a minimal decimal string. nil renders as "0".
func FormatValue(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// ParseUnits converts a decimal amount into its smallest unit, scaling by
// 10^decimals. Amounts with more fractional digits than decimals are rejected.
func ParseUnits(amount string, decimals int) (*big.Int, error) {
	if err := checkDecimals(decimals); err != nil {
		return nil, err
	}
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	if !isPlainDecimal(amount) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %q", ErrValueOutOfRange, amount)
	}
	scaled := d.Shift(int32(decimals))
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmount, amount, decimals)
	}
	v := scaled.BigInt()
	if v.BitLen() > 256 {
		return nil, fmt.Errorf("%w: %q", ErrValueOutOfRange, amount)
	}
	return v, nil
}

// FormatUnits renders a smallest-unit amount as a decimal scaled down by
// 10^decimals. Whole non-zero amounts keep one fractional digit ("1.0");
// zero renders as "0".
func FormatUnits(v *big.Int, decimals int) (string, error) {
	if err := checkDecimals(decimals); err != nil {
		return "", err
	}
	if v == nil || v.Sign() == 0 {
		return "0", nil
	}
	s := decimal.NewFromBigInt(v, -int32(decimals)).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, nil
}

func checkDecimals(decimals int) error {
	if decimals < 0 || decimals > MaxDecimals {
		return fmt.Errorf("%w: decimals %d outside 0..%d", ErrInvalidAmount, decimals, MaxDecimals)
	}
	return nil
}

// isPlainDecimal reports whether s is an optionally negative run of digits
// with at most one decimal point. Exponents and a leading '+' are rejected.
func isPlainDecimal(s string) bool {
	s = strings.TrimPrefix(s, "-")
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// parseAddress parses a hex address, rejecting anything that is not exactly
// 20 bytes of hex with an optional 0x prefix.
func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}
