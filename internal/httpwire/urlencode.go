package httpwire

const upperHex = "0123456789ABCDEF"

// URLEncode percent-encodes s byte by byte, leaving [A-Za-z0-9] untouched
// and emitting %XX (uppercase hex) for everything else. It operates on raw
// bytes, not runes: a multi-byte UTF-8 sequence is encoded one byte at a
// time and is never decoded back into a single escape, matching the
// ASCII-only assumption of the module it serves.
func URLEncode(s string) string {
	buf := make([]byte, 0, len(s)*3+1)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			buf = append(buf, c)
		default:
			buf = append(buf, '%', upperHex[c>>4], upperHex[c&0x0f])
		}
	}
	return string(buf)
}
