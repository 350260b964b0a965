package conv

const hexd = "0123456789abcdef"

// AppendHex8 appends "0x" and two lowercase hex digits.
func AppendHex8(buf []byte, n uint8) []byte {
	return append(buf, '0', 'x', hexd[n>>4], hexd[n&0xF])
}

// Hex8 formats n as "0x%02x" without fmt.
func Hex8(n uint8) string {
	var b [4]byte
	return string(AppendHex8(b[:0], n))
}

// HexBytes formats p as space separated two-digit hex ("c0 ff ff 03").
func HexBytes(p []byte) string {
	if len(p) == 0 {
		return ""
	}
	out := make([]byte, 0, len(p)*3-1)
	for i, c := range p {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, hexd[c>>4], hexd[c&0xF])
	}
	return string(out)
}
