package source

import "bytes"

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
	lf      = []byte("\n")
)

// stripBOM drops a leading UTF-8 byte order mark.
func stripBOM(content []byte) ([]byte, bool) {
	return bytes.CutPrefix(content, utf8BOM)
}

// foldCRLF заменяет \r\n на \n. Одиночный \r остаётся: лексер считает его пробелом.
func foldCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, lf), true
}

// newlineOffsets returns the byte offset of every '\n'; line n+1 starts right after entry n.
func newlineOffsets(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, lf))
	for off := 0; ; off++ {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return out
		}
		off += i
		out = append(out, uint32(off)) // #nosec G115 -- source files stay far below 4 GiB
	}
}
