package script

const (
	OP_DATA_20 = 0x14
	OP_DATA_33 = 0x21
	OP_DATA_65 = 0x41

	OP_DUP         = 0x76
	OP_EQUAL       = 0x87
	OP_EQUALVERIFY = 0x88
	OP_HASH160     = 0xa9
	OP_CHECKSIG    = 0xac
)
