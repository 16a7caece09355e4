package bytepack

import "encoding/hex"

// Hex renders b as lowercase hexadecimal, two characters per byte.
func Hex(b []byte) string {
	return hex.EncodeToString(b)
}

// HexOf packs v and renders the result with Hex. It is meant for logs and
// test failure messages.
func HexOf(v Packer) (string, error) {
	b, err := Pack(v)
	if err != nil {
		return "", err
	}
	return Hex(b), nil
}
