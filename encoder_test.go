package multisend

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackTransaction(t *testing.T) {
	tx := MetaTransaction{
		Operation: DelegateCall,
		To:        common.HexToAddress("0xabcdef0123456789abcdef0123456789abcdef01"),
		Value:     big.NewInt(5),
		Data:      []byte{0xde, 0xad},
	}

	packed, err := PackTransaction(tx)
	require.NoError(t, err)

	t.Run("record size", func(t *testing.T) {
		assert.Equal(t, 85, HeaderSize)
		assert.Len(t, packed, HeaderSize+2)
	})

	t.Run("operation encoding", func(t *testing.T) {
		assert.Equal(t, byte(1), packed[0])
	})

	t.Run("address encoding", func(t *testing.T) {
		assert.Equal(t, tx.To, common.BytesToAddress(packed[1:21]))
	})

	t.Run("value encoding", func(t *testing.T) {
		want := make([]byte, 32)
		want[31] = 5
		assert.Equal(t, want, packed[21:53])
	})

	t.Run("data length encoding", func(t *testing.T) {
		want := make([]byte, 32)
		want[31] = 2
		assert.Equal(t, want, packed[53:85])
	})

	t.Run("data encoding", func(t *testing.T) {
		assert.Equal(t, []byte{0xde, 0xad}, packed[85:])
	})
}

func TestPackTransactionDefaults(t *testing.T) {
	packed, err := PackTransaction(MetaTransaction{To: addrA})
	require.NoError(t, err)

	assert.Len(t, packed, HeaderSize)
	assert.Equal(t, byte(0), packed[0], "zero operation packs as call")
	assert.True(t, bytes.Equal(make([]byte, 64), packed[21:85]), "nil value and data pack as zero words")
}

func TestPackTransactionValueRange(t *testing.T) {
	tests := []struct {
		name  string
		value *big.Int
		err   error
	}{
		{"zero", big.NewInt(0), nil},
		{"above 64 bits", new(big.Int).Lsh(big.NewInt(1), 100), nil},
		{"max uint256", maxUint256(), nil},
		{"2^256", new(big.Int).Lsh(big.NewInt(1), 256), ErrValueOutOfRange},
		{"negative", big.NewInt(-1), ErrValueOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed, err := PackTransaction(MetaTransaction{To: addrA, Value: tt.value})
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, new(big.Int).SetBytes(packed[21:53]).Cmp(tt.value))
		})
	}
}

func TestPackTransactionInvalidOperation(t *testing.T) {
	_, err := PackTransaction(MetaTransaction{Operation: Operation(2), To: addrA})
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestUnpackTransaction(t *testing.T) {
	first := MetaTransaction{Operation: Call, To: addrA, Value: ether(1), Data: []byte{0x01, 0x02, 0x03}}
	second := MetaTransaction{Operation: DelegateCall, To: addrB, Value: maxUint256()}

	p1, err := PackTransaction(first)
	require.NoError(t, err)
	p2, err := PackTransaction(second)
	require.NoError(t, err)
	blob := append(append([]byte{}, p1...), p2...)

	t.Run("first record", func(t *testing.T) {
		tx, next, err := UnpackTransaction(blob, 0)
		require.NoError(t, err)
		assertTxEqual(t, first, tx)
		assert.Equal(t, len(p1), next)
	})

	t.Run("second record", func(t *testing.T) {
		tx, next, err := UnpackTransaction(blob, len(p1))
		require.NoError(t, err)
		assertTxEqual(t, second, tx)
		assert.Nil(t, tx.Data, "empty data unpacks as nil")
		assert.Equal(t, len(blob), next)
	})

	t.Run("data is copied", func(t *testing.T) {
		tx, _, err := UnpackTransaction(blob, 0)
		require.NoError(t, err)
		tx.Data[0] = 0xff
		assert.Equal(t, byte(0x01), blob[HeaderSize])
	})
}

func TestUnpackTransactionErrors(t *testing.T) {
	packed, err := PackTransaction(MetaTransaction{To: addrA, Data: []byte{0x01, 0x02, 0x03, 0x04}})
	require.NoError(t, err)

	t.Run("truncated header", func(t *testing.T) {
		_, _, err := UnpackTransaction(packed[:HeaderSize-1], 0)
		assert.ErrorIs(t, err, ErrTruncatedInput)
	})

	t.Run("truncated data", func(t *testing.T) {
		_, _, err := UnpackTransaction(packed[:len(packed)-1], 0)
		assert.ErrorIs(t, err, ErrTruncatedInput)
	})

	t.Run("huge declared length", func(t *testing.T) {
		corrupt := append([]byte{}, packed...)
		for i := 53; i < 85; i++ {
			corrupt[i] = 0xff
		}
		_, _, err := UnpackTransaction(corrupt, 0)
		assert.ErrorIs(t, err, ErrTruncatedInput)
	})

	t.Run("offset out of range", func(t *testing.T) {
		_, _, err := UnpackTransaction(packed, len(packed)+1)
		assert.ErrorIs(t, err, ErrTruncatedInput)

		_, _, err = UnpackTransaction(packed, -1)
		assert.ErrorIs(t, err, ErrTruncatedInput)
	})

	t.Run("invalid operation", func(t *testing.T) {
		corrupt := append([]byte{}, packed...)
		corrupt[0] = 7
		_, _, err := UnpackTransaction(corrupt, 0)
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})
}
