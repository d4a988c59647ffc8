// Package multisend prepares and interprets the call data an avatar (a Safe
// or any Zodiac IAvatar) executes on behalf of its modules.
//
// The package provides two symmetric codecs:
//
//   - Batches: many MetaTransactions are packed into a single
//     multiSend(bytes) call, executed by the avatar through DELEGATECALL.
//   - Intents: a MetaTransaction is classified into a Transaction (native or
//     token transfer, collectible transfer, ABI-described contract call, or
//     raw call), and a Transaction is encoded back into a MetaTransaction.
//
// # Basic Usage
//
// Encode intents and batch them:
//
//	batch := multisend.NewBatch()
//	err := batch.AddTransaction(&multisend.TransferFunds{
//	    To:     "0x3333333333333333333333333333333333333333",
//	    Amount: "1.5",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	call, err := batch.Encode(multisend.MultiSend141)
//
// Decode a batch and classify each transaction:
//
//	txs, err := multisend.DecodeBatch(call)
//	for i, tx := range txs {
//	    intent, err := multisend.Classify(tx, strconv.Itoa(i))
//	    ...
//	}
//
// # Packed Layout
//
// Each batched transaction is packed without padding as
//
//	[operation:1][to:20][value:32][dataLength:32][data:dataLength]
//
// and the concatenation is passed as the single bytes argument of multiSend.
//
// # Classification Order
//
// Classify tries native transfers, ERC-20 transfer, ERC-721
// safeTransferFrom, then the caller supplied ABI, and falls back to a raw
// call. Transfer-shaped payloads that carry value are not transfers.
//
// # References
//
//   - https://github.com/safe-global/safe-smart-account (MultiSend.sol)
//   - https://github.com/gnosisguild/zodiac (IAvatar)
package multisend
