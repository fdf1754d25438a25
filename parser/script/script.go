package script

// IsPubkeyHash returns true if the script is a standard pay-to-pubkey-hash:
// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG.
func IsPubkeyHash(pkScript []byte) bool {
	return len(pkScript) == 25 &&
		pkScript[0] == OP_DUP &&
		pkScript[1] == OP_HASH160 &&
		pkScript[2] == OP_DATA_20 &&
		pkScript[23] == OP_EQUALVERIFY &&
		pkScript[24] == OP_CHECKSIG
}

// IsScriptHash returns true if the script is a standard pay-to-script-hash:
// OP_HASH160 <20 bytes> OP_EQUAL.
func IsScriptHash(pkScript []byte) bool {
	return len(pkScript) == 23 &&
		pkScript[0] == OP_HASH160 &&
		pkScript[1] == OP_DATA_20 &&
		pkScript[22] == OP_EQUAL
}

// IsPubkey returns true if the script is a standard pay-to-pubkey:
// <33 or 65 byte key> OP_CHECKSIG, with a plausible key prefix byte.
func IsPubkey(pkScript []byte) bool {
	if len(pkScript) == 35 && pkScript[0] == OP_DATA_33 && pkScript[34] == OP_CHECKSIG {
		return pkScript[1] == 0x02 || pkScript[1] == 0x03
	}
	if len(pkScript) == 67 && pkScript[0] == OP_DATA_65 && pkScript[66] == OP_CHECKSIG {
		return pkScript[1] == 0x04
	}
	return false
}
