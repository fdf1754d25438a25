package script

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// SpecialScripts is the number of reserved template codes in the compressed
// script encoding. A script-length discriminator below it selects a template;
// anything at or above it means "raw script of length value-SpecialScripts".
const SpecialScripts = 6

// Template codes. Serialized on disk by the node, so the values are fixed.
const (
	TplPubkeyHash  = 0 // 20-byte hash160, rebuilds P2PKH
	TplScriptHash  = 1 // 20-byte hash160, rebuilds P2SH
	TplPubkeyEven  = 2 // 32-byte x coord, compressed key with 0x02 prefix
	TplPubkeyOdd   = 3 // 32-byte x coord, compressed key with 0x03 prefix
	TplPubkeyFull2 = 4 // 32-byte x coord, uncompressed key, even y
	TplPubkeyFull3 = 5 // 32-byte x coord, uncompressed key, odd y

	// TypeRaw is the histogram bucket for non-templated scripts.
	TypeRaw = 6
)

var (
	// ErrInvalidPayloadLength means the payload size does not match the
	// template's fixed requirement (20 or 32 bytes).
	ErrInvalidPayloadLength = errors.New("invalid payload length")

	// ErrInvalidPublicKey means a pubkey-template payload is not a point on
	// the curve, so the uncompressed key cannot be recovered.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrNotStandardScript means a rebuilt script failed the
	// P2PK/P2PKH/P2SH self-check. The encoder only ever emits those three
	// shapes, so hitting this is a defect in Decompress itself.
	ErrNotStandardScript = errors.New("decompressed script not standard")
)

// PayloadSize returns the fixed payload size of a template code.
func PayloadSize(code byte) int {
	if code < 2 {
		return 20
	}
	return 32
}

// Decompress rebuilds the full output script from a template code and its
// payload. Codes ≥ SpecialScripts never reach here; raw scripts are copied
// verbatim by the caller.
func Decompress(code byte, payload []byte) (pkScript []byte, err error) {
	if len(payload) != PayloadSize(code) {
		return nil, fmt.Errorf("template %d: got %d bytes: %w", code, len(payload), ErrInvalidPayloadLength)
	}

	switch code {
	case TplPubkeyHash:
		pkScript = make([]byte, 25)
		pkScript[0] = OP_DUP
		pkScript[1] = OP_HASH160
		pkScript[2] = OP_DATA_20
		copy(pkScript[3:23], payload)
		pkScript[23] = OP_EQUALVERIFY
		pkScript[24] = OP_CHECKSIG

	case TplScriptHash:
		pkScript = make([]byte, 23)
		pkScript[0] = OP_HASH160
		pkScript[1] = OP_DATA_20
		copy(pkScript[2:22], payload)
		pkScript[22] = OP_EQUAL

	case TplPubkeyEven, TplPubkeyOdd:
		// The template code doubles as the compressed-key prefix byte.
		pkScript = make([]byte, 35)
		pkScript[0] = OP_DATA_33
		pkScript[1] = code
		copy(pkScript[2:34], payload)
		pkScript[34] = OP_CHECKSIG

	case TplPubkeyFull2, TplPubkeyFull3:
		compressed := make([]byte, 33)
		compressed[0] = code - 2
		copy(compressed[1:], payload)
		key, perr := btcec.ParsePubKey(compressed)
		if perr != nil {
			return nil, fmt.Errorf("template %d: %v: %w", code, perr, ErrInvalidPublicKey)
		}
		pkScript = make([]byte, 67)
		pkScript[0] = OP_DATA_65
		copy(pkScript[1:66], key.SerializeUncompressed())
		pkScript[66] = OP_CHECKSIG

	default:
		return nil, fmt.Errorf("template %d: %w", code, ErrInvalidPayloadLength)
	}

	if !IsPubkey(pkScript) && !IsPubkeyHash(pkScript) && !IsScriptHash(pkScript) {
		return nil, fmt.Errorf("template %d: %w", code, ErrNotStandardScript)
	}
	return pkScript, nil
}
