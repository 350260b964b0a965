package conv

// AppendInt appends the base-10 representation of n to buf.
// No fmt/strconv dependency so it stays cheap on MCU builds.
func AppendInt(buf []byte, n int) []byte {
	var tmp [20]byte
	i := len(tmp)
	u := uint64(n)
	if n < 0 {
		u = uint64(-int64(n))
	}
	if u == 0 {
		i--
		tmp[i] = '0'
	}
	for u > 0 {
		i--
		tmp[i] = byte('0' + u%10)
		u /= 10
	}
	if n < 0 {
		i--
		tmp[i] = '-'
	}
	return append(buf, tmp[i:]...)
}

// Itoa formats n in base 10.
func Itoa(n int) string {
	var b [20]byte
	return string(AppendInt(b[:0], n))
}
