package multisend

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Packed record layout constants.
const (
	// OperationSize is the size of the operation field in bytes.
	OperationSize = 1

	// AddressSize is the size of the destination field in bytes.
	AddressSize = common.AddressLength

	// WordSize is the size of the value and data length fields in bytes.
	WordSize = 32

	// HeaderSize is the fixed part of a packed record preceding the data.
	HeaderSize = OperationSize + AddressSize + 2*WordSize

	valueOffset  = OperationSize + AddressSize
	lengthOffset = valueOffset + WordSize
)

// PackTransaction produces the packed encoding of a single transaction.
// Format: [operation:1][to:20][value:32][dataLength:32][data:dataLength]
func PackTransaction(tx MetaTransaction) ([]byte, error) {
	if !tx.Operation.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOperation, tx.Operation)
	}
	value, err := toWord(tx.Value)
	if err != nil {
		return nil, err
	}

	out := make([]byte, HeaderSize+len(tx.Data))

	// Byte 0: Operation
	out[0] = byte(tx.Operation)

	// Bytes 1-20: Destination address
	copy(out[OperationSize:valueOffset], tx.To.Bytes())

	// Bytes 21-52: Value
	value.WriteToSlice(out[valueOffset:lengthOffset])

	// Bytes 53-84: Data length
	uint256.NewInt(uint64(len(tx.Data))).WriteToSlice(out[lengthOffset:HeaderSize])

	// Bytes 85+: Data
	copy(out[HeaderSize:], tx.Data)

	return out, nil
}

// UnpackTransaction decodes the record starting at offset and returns it
// together with the offset of the byte following its data.
func UnpackTransaction(packed []byte, offset int) (MetaTransaction, int, error) {
	if offset < 0 || offset > len(packed) {
		return MetaTransaction{}, offset, fmt.Errorf("%w: offset %d outside %d bytes", ErrTruncatedInput, offset, len(packed))
	}
	rest := packed[offset:]
	if len(rest) < HeaderSize {
		return MetaTransaction{}, offset, fmt.Errorf("%w: header needs %d bytes, %d remain", ErrTruncatedInput, HeaderSize, len(rest))
	}

	op := Operation(rest[0])
	if !op.Valid() {
		return MetaTransaction{}, offset, fmt.Errorf("%w: %d", ErrInvalidOperation, rest[0])
	}

	to := common.BytesToAddress(rest[OperationSize:valueOffset])
	value := new(uint256.Int).SetBytes32(rest[valueOffset:lengthOffset])

	length := new(uint256.Int).SetBytes32(rest[lengthOffset:HeaderSize])
	available := uint64(len(rest) - HeaderSize)
	if !length.IsUint64() || length.Uint64() > available {
		return MetaTransaction{}, offset, fmt.Errorf("%w: data needs %s bytes, %d remain", ErrTruncatedInput, length.Dec(), available)
	}
	n := int(length.Uint64())

	var data []byte
	if n > 0 {
		data = make([]byte, n)
		copy(data, rest[HeaderSize:HeaderSize+n])
	}

	tx := MetaTransaction{
		Operation: op,
		To:        to,
		Value:     value.ToBig(),
		Data:      data,
	}
	return tx, offset + HeaderSize + n, nil
}

// toWord converts a value to a 256-bit word, treating nil as zero.
func toWord(v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return new(uint256.Int), nil
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrValueOutOfRange, v)
	}
	word, overflow := uint256.FromBig(v)
	if overflow {
		return nil, fmt.Errorf("%w: %s", ErrValueOutOfRange, v)
	}
	return word, nil
}
