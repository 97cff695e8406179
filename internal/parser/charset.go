package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"mime"

	"golang.org/x/net/html/charset"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16BEBOM = []byte{0xFE, 0xFF}
	utf16LEBOM = []byte{0xFF, 0xFE}
)

// NewUTF8Reader wraps a response body so that it is decoded to UTF-8 before JSON decoding.
// JSON is UTF-8 unless the body starts with a UTF-16 byte order mark or contentType names
// another charset. UTF-8 input passes through unchanged, minus any byte order mark.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	br := bufio.NewReader(body)
	head, _ := br.Peek(len(utf8BOM))

	switch {
	case bytes.HasPrefix(head, utf8BOM):
		_, _ = br.Discard(len(utf8BOM))
		return br, nil
	case bytes.HasPrefix(head, utf16BEBOM):
		return utf16Reader(br, "utf-16be")
	case bytes.HasPrefix(head, utf16LEBOM):
		return utf16Reader(br, "utf-16le")
	}

	if label := charsetParam(contentType); label != "" {
		if _, name := charset.Lookup(label); name != "" && name != "utf-8" {
			return charset.NewReader(br, contentType)
		}
	}
	return br, nil
}

func utf16Reader(br *bufio.Reader, label string) (io.Reader, error) {
	enc, _ := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	_, _ = br.Discard(len(utf16LEBOM))
	return enc.NewDecoder().Reader(br), nil
}

// charsetParam returns the charset parameter of a media type, or "" when there is none.
func charsetParam(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}
