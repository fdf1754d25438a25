package script

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// secp256k1 generator point, a known-good public key.
const (
	genX = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	genY = "483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	raw, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestDecompressHashTemplates(t *testing.T) {
	payload := make([]byte, 20)

	p2pkh, err := Decompress(TplPubkeyHash, payload)
	if err != nil {
		t.Fatal(err)
	}
	wantP2pkh := append(append([]byte{OP_DUP, OP_HASH160, OP_DATA_20}, payload...), OP_EQUALVERIFY, OP_CHECKSIG)
	if !bytes.Equal(p2pkh, wantP2pkh) {
		t.Errorf("p2pkh = %x, want %x", p2pkh, wantP2pkh)
	}
	if len(p2pkh) != 25 || !IsPubkeyHash(p2pkh) {
		t.Errorf("p2pkh misclassified: %x", p2pkh)
	}

	p2sh, err := Decompress(TplScriptHash, payload)
	if err != nil {
		t.Fatal(err)
	}
	wantP2sh := append(append([]byte{OP_HASH160, OP_DATA_20}, payload...), OP_EQUAL)
	if !bytes.Equal(p2sh, wantP2sh) {
		t.Errorf("p2sh = %x, want %x", p2sh, wantP2sh)
	}
	if len(p2sh) != 23 || !IsScriptHash(p2sh) {
		t.Errorf("p2sh misclassified: %x", p2sh)
	}
}

func TestDecompressCompressedPubkey(t *testing.T) {
	payload := hexBytes(t, genX)
	for _, code := range []byte{TplPubkeyEven, TplPubkeyOdd} {
		pkScript, err := Decompress(code, payload)
		if err != nil {
			t.Fatalf("template %d: %v", code, err)
		}
		if len(pkScript) != 35 || !IsPubkey(pkScript) {
			t.Fatalf("template %d: not p2pk: %x", code, pkScript)
		}
		// The pushed key keeps the template code as its prefix byte.
		if pkScript[0] != OP_DATA_33 || pkScript[1] != code {
			t.Errorf("template %d: key prefix %#02x", code, pkScript[1])
		}
		if !bytes.Equal(pkScript[2:34], payload) {
			t.Errorf("template %d: x coord mangled", code)
		}
	}
}

func TestDecompressUncompressedPubkey(t *testing.T) {
	payload := hexBytes(t, genX)
	pkScript, err := Decompress(TplPubkeyFull2, payload)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkScript) != 67 || !IsPubkey(pkScript) {
		t.Fatalf("not uncompressed p2pk: %x", pkScript)
	}
	if pkScript[1] != 0x04 {
		t.Errorf("key prefix = %#02x, want 0x04", pkScript[1])
	}
	if !bytes.Equal(pkScript[2:34], payload) {
		t.Errorf("x coord mangled")
	}
	// Even-y template recovers the generator's y exactly.
	if !bytes.Equal(pkScript[34:66], hexBytes(t, genY)) {
		t.Errorf("y coord = %x, want %s", pkScript[34:66], genY)
	}
}

func TestDecompressInvalidPublicKey(t *testing.T) {
	// An x coordinate above the field prime cannot be a curve point.
	payload := bytes.Repeat([]byte{0xff}, 32)
	for _, code := range []byte{TplPubkeyFull2, TplPubkeyFull3} {
		if _, err := Decompress(code, payload); !errors.Is(err, ErrInvalidPublicKey) {
			t.Errorf("template %d err = %v, want ErrInvalidPublicKey", code, err)
		}
	}
}

func TestDecompressInvalidPayloadLength(t *testing.T) {
	cases := []struct {
		code byte
		size int
	}{
		{TplPubkeyHash, 19},
		{TplScriptHash, 32},
		{TplPubkeyEven, 20},
		{TplPubkeyFull2, 33},
	}
	for _, tc := range cases {
		if _, err := Decompress(tc.code, make([]byte, tc.size)); !errors.Is(err, ErrInvalidPayloadLength) {
			t.Errorf("template %d size %d err = %v, want ErrInvalidPayloadLength", tc.code, tc.size, err)
		}
	}
}

func TestGetAddressPkh(t *testing.T) {
	hash := hexBytes(t, "89abcdefabbaabbaabbaabbaabbaabbaabbaabba")

	p2pkh, _ := Decompress(TplPubkeyHash, hash)
	if got := GetAddressPkh(p2pkh); !bytes.Equal(got, hash) {
		t.Errorf("p2pkh pkh = %x", got)
	}
	p2sh, _ := Decompress(TplScriptHash, hash)
	if got := GetAddressPkh(p2sh); !bytes.Equal(got, hash) {
		t.Errorf("p2sh pkh = %x", got)
	}

	p2pk, _ := Decompress(TplPubkeyEven, hexBytes(t, genX))
	if got := GetAddressPkh(p2pk); !bytes.Equal(got, GetHash160(p2pk[1:34])) {
		t.Errorf("p2pk pkh = %x", got)
	}

	if got := GetAddressPkh([]byte{0x6a}); got != nil {
		t.Errorf("op_return pkh = %x, want nil", got)
	}
}
