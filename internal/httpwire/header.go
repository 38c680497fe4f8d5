package httpwire

// FindHeader locates the first occurrence of "\r\n<name>:" in buf, case
// insensitively, and returns the trimmed value that follows up to the
// next CR or LF. rest is the slice of buf immediately after the returned
// value, so repeated calls with rest as the new buf walk forward through
// further occurrences of the same header (used to collect every
// Set-Cookie line). ok is false when the header is not present, in which
// case rest equals buf unchanged.
func FindHeader(buf []byte, name string) (value string, rest []byte, ok bool) {
	needle := make([]byte, 0, len(name)+3)
	needle = append(needle, '\r', '\n')
	needle = append(needle, name...)
	needle = append(needle, ':')

	idx := indexFold(buf, needle)
	if idx < 0 {
		return "", buf, false
	}

	pos := idx + len(needle)
	for pos < len(buf) && isLinearWhitespace(buf[pos]) {
		pos++
	}

	start := pos
	for pos < len(buf) && buf[pos] != '\r' && buf[pos] != '\n' {
		pos++
	}

	return string(buf[start:pos]), buf[pos:], true
}

func isLinearWhitespace(b byte) bool {
	return b == ' ' || b == '\t'
}

// indexFold is bytes.Index with ASCII case-insensitive comparison; buf
// may be arbitrary bytes (not necessarily valid UTF-8), so this never
// goes through strings.EqualFold / unicode case folding.
func indexFold(buf, needle []byte) int {
	if len(needle) == 0 {
		return 0
	}
	n := len(needle)
	for i := 0; i+n <= len(buf); i++ {
		if equalFoldASCII(buf[i:i+n], needle) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if lowerByte(a[i]) != lowerByte(b[i]) {
			return false
		}
	}
	return true
}

func lowerByte(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// ContainsFold reports whether needle occurs in s, case-insensitively,
// as a plain ASCII substring match. It backs the deny-signal scan, which
// runs independently against each response line rather than the whole
// buffer.
func ContainsFold(s, needle string) bool {
	return indexFold([]byte(s), []byte(needle)) >= 0
}
