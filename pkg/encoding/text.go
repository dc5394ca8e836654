// Package encoding decodes input text into UTF-8 for meshing.
package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for encoding names that cannot be resolved.
var ErrUnknownEncoding = errors.New("unknown encoding")

// ErrInvalidUTF8 is returned when UTF-8 input contains invalid sequences.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 text")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Lookup resolves an encoding name such as "utf-8", "euc-kr", "cp949",
// "shift_jis" or "windows-1252". An empty name means UTF-8 and returns nil.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "euc-kr", "euckr", "cp949":
		// cp949 is a superset of EUC-KR and is what korean.EUCKR decodes
		return korean.EUCKR, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// Decode converts data in the named encoding to a UTF-8 string. A UTF-8
// byte order mark is dropped and CRLF/CR line endings become LF.
func Decode(data []byte, name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}

	if enc == nil {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", ErrInvalidUTF8
		}
	} else {
		data, _, err = transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("decoding %s: %w", name, err)
		}
	}

	return NormalizeNewlines(string(data)), nil
}

// NormalizeNewlines replaces CRLF and lone CR line endings with LF.
func NormalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
