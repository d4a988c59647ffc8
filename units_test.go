package multisend

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"decimal", "1000", "1000", nil},
		{"hex", "0x3e8", "1000", nil},
		{"empty is zero", "", "0", nil},
		{"surrounding spaces", " 42 ", "42", nil},
		{"max uint256", maxUint256().String(), maxUint256().String(), nil},
		{"negative", "-1", "", ErrValueOutOfRange},
		{"not a number", "abc", "", ErrInvalidAmount},
		{"fraction", "1.5", "", ErrInvalidAmount},
		{"too large", new(big.Int).Lsh(big.NewInt(1), 256).String(), "", ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0", FormatValue(nil))
	assert.Equal(t, "0", FormatValue(new(big.Int)))
	assert.Equal(t, "1000000000000000000", FormatValue(ether(1)))
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     string
		wantErr  error
	}{
		{"whole ether", "1", 18, "1000000000000000000", nil},
		{"fractional ether", "1.5", 18, "1500000000000000000", nil},
		{"smallest unit", "0.000000000000000001", 18, "1", nil},
		{"six decimals", "1.5", 6, "1500000", nil},
		{"zero decimals", "42", 0, "42", nil},
		{"zero", "0", 18, "0", nil},
		{"trailing zeros", "1.50", 6, "1500000", nil},
		{"too many fractional digits", "0.0000001", 6, "", ErrInvalidAmount},
		{"empty", "", 18, "", ErrInvalidAmount},
		{"garbage", "one", 18, "", ErrInvalidAmount},
		{"negative", "-1", 18, "", ErrValueOutOfRange},
		{"negative decimals", "1", -1, "", ErrInvalidAmount},
		{"decimals beyond 32 bits", "1", 1<<32 + 6, "", ErrInvalidAmount},
		{"decimals above maximum", "1", 257, "", ErrInvalidAmount},
		{"maximum decimals", "0", MaxDecimals, "0", nil},
		{"exponent", "1e3", 0, "", ErrInvalidAmount},
		{"upper exponent", "1E3", 0, "", ErrInvalidAmount},
		{"leading plus", "+1", 18, "", ErrInvalidAmount},
		{"bare point", ".", 18, "", ErrInvalidAmount},
		{"leading point", ".5", 1, "5", nil},
		{"overflow", maxUint256().String(), 1, "", ErrValueOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits(tt.amount, tt.decimals)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		name     string
		value    *big.Int
		decimals int
		want     string
	}{
		{"nil", nil, 18, "0"},
		{"zero", big.NewInt(0), 18, "0"},
		{"whole ether", ether(1), 18, "1.0"},
		{"fractional ether", big.NewInt(1500000000000000000), 18, "1.5"},
		{"one wei", big.NewInt(1), 18, "0.000000000000000001"},
		{"six decimals", big.NewInt(2500000), 6, "2.5"},
		{"zero decimals", big.NewInt(42), 0, "42.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatUnits(tt.value, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("decimals out of range", func(t *testing.T) {
		for _, decimals := range []int{-1, 257, 1<<32 + 6} {
			_, err := FormatUnits(big.NewInt(1000000), decimals)
			assert.ErrorIs(t, err, ErrInvalidAmount, "decimals %d", decimals)
		}
	})
}

func TestUnitsRoundTrip(t *testing.T) {
	for _, amount := range []string{"1.0", "0.25", "123.456789", "0.000001"} {
		t.Run(amount, func(t *testing.T) {
			v, err := ParseUnits(amount, 6)
			require.NoError(t, err)
			got, err := FormatUnits(v, 6)
			require.NoError(t, err)
			assert.Equal(t, amount, got)
		})
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  common.Address
		ok    bool
	}{
		{"checksummed", addrA.Hex(), addrA, true},
		{"lowercase", "0x1f9840a85d5af5bf1d1762f925bdaddc4201f984", addrA, true},
		{"no prefix", "1f9840a85d5af5bf1d1762f925bdaddc4201f984", addrA, true},
		{"short", "0x1234", common.Address{}, false},
		{"not hex", "0xzz9840a85d5af5bf1d1762f925bdaddc4201f984", common.Address{}, false},
		{"empty", "", common.Address{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAddress(tt.input)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
