package multisend

import (
	"bytes"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Canonical deployments of the MultiSend contracts (v1.4.1). They are
// provided for convenience; EncodeBatch never assumes one.
var (
	MultiSend141         = common.HexToAddress("0x38869bf66a61cF6bDB996A6aE40D5853Fd43B526")
	MultiSendCallOnly141 = common.HexToAddress("0x9641d764fc13c8B624c04430C7356C1C7C8102e2")
)

// ERC20ABI describes the fungible token transfer recognised by Classify.
const ERC20ABI = `[
	{
		"name": "transfer",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "recipient", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": [
			{"name": "", "type": "bool"}
		]
	}
]`

// ERC721ABI describes the collectible transfer recognised by Classify.
const ERC721ABI = `[
	{
		"name": "safeTransferFrom",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [
			{"name": "_from", "type": "address"},
			{"name": "_to", "type": "address"},
			{"name": "_tokenId", "type": "uint256"}
		],
		"outputs": []
	}
]`

// MultiSendABI describes the batch-execution entry point.
const MultiSendABI = `[
	{
		"name": "multiSend",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [
			{"name": "transactions", "type": "bytes"}
		],
		"outputs": []
	}
]`

// AvatarABI describes the module entry point of an avatar.
const AvatarABI = `[
	{
		"name": "execTransactionFromModule",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "value", "type": "uint256"},
			{"name": "data", "type": "bytes"},
			{"name": "operation", "type": "uint8"}
		],
		"outputs": [
			{"name": "success", "type": "bool"}
		]
	}
]`

var (
	erc20ABI     = MustParseABI(ERC20ABI)
	erc721ABI    = MustParseABI(ERC721ABI)
	multiSendABI = MustParseABI(MultiSendABI)
	avatarABI    = MustParseABI(AvatarABI)
)

const (
	erc20TransferMethod  = "transfer"
	erc721TransferMethod = "safeTransferFrom"
	multiSendMethod      = "multiSend"
	moduleCallMethod     = "execTransactionFromModule"
)

// ParseABI parses a JSON ABI string into an abi.ABI.
func ParseABI(abiJSON string) (abi.ABI, error) {
	return abi.JSON(strings.NewReader(abiJSON))
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}

// FindMethod looks up a method by canonical signature, e.g.
// "transfer(address,uint256)", or by its ABI name. A name shared by
// overloads is ambiguous and not found.
func FindMethod(contract abi.ABI, signature string) (abi.Method, bool) {
	sig := strings.TrimPrefix(strings.TrimSpace(signature), "function ")
	sig = strings.Join(strings.Fields(sig), "")
	if sig == "" {
		return abi.Method{}, false
	}
	for _, name := range sortedMethodNames(contract) {
		if m := contract.Methods[name]; m.Sig == sig {
			return m, true
		}
	}
	if strings.Contains(sig, "(") {
		return abi.Method{}, false
	}
	var (
		found abi.Method
		count int
	)
	for _, m := range contract.Methods {
		if m.RawName == sig {
			found = m
			count++
		}
	}
	return found, count == 1
}

// MethodsBySelector returns every method whose selector matches the first
// four bytes of data. Overloads are ordered as declared.
func MethodsBySelector(contract abi.ABI, data []byte) []abi.Method {
	if len(data) < 4 {
		return nil
	}
	var found []abi.Method
	for _, name := range sortedMethodNames(contract) {
		m := contract.Methods[name]
		if bytes.Equal(m.ID, data[:4]) {
			found = append(found, m)
		}
	}
	return found
}

// sortedMethodNames returns method names ordered so that go-ethereum's
// overload names (f, f0, f1, ...) follow declaration order.
func sortedMethodNames(contract abi.ABI) []string {
	names := make([]string, 0, len(contract.Methods))
	for name := range contract.Methods {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}
