package script

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

func GetHash160(data []byte) (hash []byte) {
	sha := sha256.New()
	sha.Write(data[:])
	tmp := sha.Sum(nil)

	rp := ripemd160.New()
	rp.Write(tmp)
	hash = rp.Sum(nil)
	return
}

// GetAddressPkh extracts the 20-byte address payload from a standard script:
// the embedded hash for P2PKH/P2SH, hash160 of the pushed key for P2PK.
// Returns nil for anything else (raw scripts the templates don't cover).
func GetAddressPkh(pkScript []byte) []byte {
	if IsPubkeyHash(pkScript) {
		pkh := make([]byte, 20)
		copy(pkh, pkScript[3:23])
		return pkh
	}
	if IsScriptHash(pkScript) {
		pkh := make([]byte, 20)
		copy(pkh, pkScript[2:22])
		return pkh
	}
	if IsPubkey(pkScript) {
		return GetHash160(pkScript[1 : len(pkScript)-1])
	}
	return nil
}
