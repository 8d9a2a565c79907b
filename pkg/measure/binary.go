// File: pkg/measure/binary.go
package measure

import "bytes"

// sniffLen is how much of a file is inspected to decide whether it is binary.
const sniffLen = 512

// isBinary reports whether data looks binary: it contains a NUL byte in the first
// sniffLen bytes or more than 30% of them are non-printable.
func isBinary(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	if len(data) == 0 {
		return false
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range data {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(data)) > 0.3
}

// isPrintable treats ASCII text, common whitespace and UTF-8 continuation bytes as printable.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80
}
