package multisend

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethmath "github.com/ethereum/go-ethereum/common/math"
)

var bigIntType = reflect.TypeOf((*big.Int)(nil))

// coerceInput converts a JSON-like value into the exact Go value the ABI
// packer expects for t. Accepted inputs:
//   - integers: decimal or 0x hex strings, json.Number, float64, Go ints, *big.Int
//   - bool: bool or "true"/"false"
//   - address: hex string or common.Address
//   - bytes, bytesN, function: 0x hex string or []byte
//   - arrays, slices: any slice or array of accepted values
//   - tuples: positional list or map keyed by component name
//
// A nil value yields the canonical zero value of t.
func coerceInput(t abi.Type, v any) (reflect.Value, error) {
	if v == nil {
		return zeroValue(t), nil
	}
	goType := t.GetType()

	switch t.T {
	case abi.IntTy, abi.UintTy:
		n, err := toBigInt(v)
		if err != nil {
			return reflect.Value{}, err
		}
		if err := checkIntRange(t, n); err != nil {
			return reflect.Value{}, err
		}
		if goType == bigIntType {
			return reflect.ValueOf(n), nil
		}
		rv := reflect.New(goType).Elem()
		if t.T == abi.IntTy {
			rv.SetInt(n.Int64())
		} else {
			rv.SetUint(n.Uint64())
		}
		return rv, nil

	case abi.BoolTy:
		switch b := v.(type) {
		case bool:
			return reflect.ValueOf(b), nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			if err != nil {
				return reflect.Value{}, mismatch(t, v)
			}
			return reflect.ValueOf(parsed), nil
		}
		return reflect.Value{}, mismatch(t, v)

	case abi.StringTy:
		s, ok := v.(string)
		if !ok {
			return reflect.Value{}, mismatch(t, v)
		}
		return reflect.ValueOf(s), nil

	case abi.AddressTy:
		switch a := v.(type) {
		case common.Address:
			return reflect.ValueOf(a), nil
		case string:
			addr, err := parseAddress(a)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(addr), nil
		}
		return reflect.Value{}, mismatch(t, v)

	case abi.BytesTy:
		b, err := toBytes(t, v)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil

	case abi.FixedBytesTy, abi.FunctionTy:
		b, err := toBytes(t, v)
		if err != nil {
			return reflect.Value{}, err
		}
		if len(b) != goType.Len() {
			return reflect.Value{}, &TypeMismatchError{Expected: t.String(), Got: fmt.Sprintf("%d bytes", len(b))}
		}
		rv := reflect.New(goType).Elem()
		reflect.Copy(rv, reflect.ValueOf(b))
		return rv, nil

	case abi.SliceTy:
		items, err := toList(t, v)
		if err != nil {
			return reflect.Value{}, err
		}
		rv := reflect.MakeSlice(goType, len(items), len(items))
		for i, item := range items {
			ev, err := coerceInput(*t.Elem, item)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			rv.Index(i).Set(ev)
		}
		return rv, nil

	case abi.ArrayTy:
		items, err := toList(t, v)
		if err != nil {
			return reflect.Value{}, err
		}
		if len(items) != t.Size {
			return reflect.Value{}, &TypeMismatchError{Expected: t.String(), Got: fmt.Sprintf("%d elements", len(items))}
		}
		rv := reflect.New(goType).Elem()
		for i, item := range items {
			ev, err := coerceInput(*t.Elem, item)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			rv.Index(i).Set(ev)
		}
		return rv, nil

	case abi.TupleTy:
		rv := reflect.New(goType).Elem()
		if fields, ok := v.(map[string]any); ok {
			for i, elem := range t.TupleElems {
				ev, err := coerceInput(*elem, fields[t.TupleRawNames[i]])
				if err != nil {
					return reflect.Value{}, fmt.Errorf("%s: %w", t.TupleRawNames[i], err)
				}
				rv.Field(i).Set(ev)
			}
			return rv, nil
		}
		items, err := toList(t, v)
		if err != nil {
			return reflect.Value{}, err
		}
		if len(items) != len(t.TupleElems) {
			return reflect.Value{}, &TypeMismatchError{Expected: t.String(), Got: fmt.Sprintf("%d elements", len(items))}
		}
		for i, elem := range t.TupleElems {
			ev, err := coerceInput(*elem, items[i])
			if err != nil {
				return reflect.Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			rv.Field(i).Set(ev)
		}
		return rv, nil
	}

	return reflect.Value{}, mismatch(t, v)
}

// zeroValue returns the canonical zero value of t: 0, false, "", the zero
// address, empty bytes, an empty slice, or arrays and tuples of zero values.
func zeroValue(t abi.Type) reflect.Value {
	goType := t.GetType()
	switch t.T {
	case abi.IntTy, abi.UintTy:
		if goType == bigIntType {
			return reflect.ValueOf(new(big.Int))
		}
	case abi.BytesTy:
		return reflect.ValueOf([]byte{})
	case abi.SliceTy:
		return reflect.MakeSlice(goType, 0, 0)
	case abi.ArrayTy:
		rv := reflect.New(goType).Elem()
		for i := 0; i < t.Size; i++ {
			rv.Index(i).Set(zeroValue(*t.Elem))
		}
		return rv
	case abi.TupleTy:
		rv := reflect.New(goType).Elem()
		for i, elem := range t.TupleElems {
			rv.Field(i).Set(zeroValue(*elem))
		}
		return rv
	}
	return reflect.Zero(goType)
}

// renderOutput converts a value unpacked by the ABI decoder into its JSON-like
// form: integers as decimal strings, addresses checksummed, byte types as 0x
// hex, arrays and tuples as []any.
func renderOutput(t abi.Type, v any) any {
	rv := reflect.ValueOf(v)
	switch t.T {
	case abi.IntTy, abi.UintTy:
		switch n := v.(type) {
		case *big.Int:
			return n.String()
		}
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return strconv.FormatInt(rv.Int(), 10)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return strconv.FormatUint(rv.Uint(), 10)
		}
	case abi.BoolTy:
		return rv.Bool()
	case abi.StringTy:
		return rv.String()
	case abi.AddressTy:
		if addr, ok := v.(common.Address); ok {
			return addr.Hex()
		}
	case abi.BytesTy:
		return hexutil.Encode(rv.Bytes())
	case abi.FixedBytesTy, abi.FunctionTy:
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return hexutil.Encode(b)
	case abi.SliceTy, abi.ArrayTy:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = renderOutput(*t.Elem, rv.Index(i).Interface())
		}
		return out
	case abi.TupleTy:
		out := make([]any, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			out[i] = renderOutput(*elem, rv.Field(i).Interface())
		}
		return out
	}
	return fmt.Sprint(v)
}

// toBigInt parses any accepted integer representation.
func toBigInt(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		return new(big.Int).Set(n), nil
	case string:
		return parseSignedInt(n)
	case json.Number:
		return parseSignedInt(n.String())
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidAmount, n)
		}
		i, _ := big.NewFloat(n).Int(nil)
		return i, nil
	case int:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	}
	return nil, &TypeMismatchError{Expected: "integer", Got: fmt.Sprintf("%T", v)}
}

func parseSignedInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	n, ok := gethmath.ParseBig256(strings.TrimPrefix(s, "-"))
	if !ok || s == "" || s == "-" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if negative {
		n.Neg(n)
	}
	return n, nil
}

// checkIntRange rejects integers that don't fit in t's bit width.
func checkIntRange(t abi.Type, n *big.Int) error {
	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return fmt.Errorf("%w: %s for %s", ErrValueOutOfRange, n, t)
		}
		return nil
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	minimum := new(big.Int).Neg(limit)
	maximum := new(big.Int).Sub(limit, big.NewInt(1))
	if n.Cmp(minimum) < 0 || n.Cmp(maximum) > 0 {
		return fmt.Errorf("%w: %s for %s", ErrValueOutOfRange, n, t)
	}
	return nil
}

func toBytes(t abi.Type, v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case hexutil.Bytes:
		return b, nil
	case string:
		decoded, err := hexutil.Decode(strings.TrimSpace(b))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", mismatch(t, v), err)
		}
		return decoded, nil
	}
	return nil, mismatch(t, v)
}

func toList(t abi.Type, v any) ([]any, error) {
	if items, ok := v.([]any); ok {
		return items, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, mismatch(t, v)
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, nil
}

func mismatch(t abi.Type, v any) error {
	return &TypeMismatchError{Expected: t.String(), Got: fmt.Sprintf("%T", v)}
}
