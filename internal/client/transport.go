package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

const acceptEncoding = "gzip, br, zstd"

// catalogTransport decorates every catalog request with the client's identity headers and
// transparently decodes gzip, brotli and zstd response bodies.
type catalogTransport struct {
	base      http.RoundTripper
	userAgent string
}

func newCatalogTransport(base http.RoundTripper, userAgent string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &catalogTransport{base: base, userAgent: userAgent}
}

// RoundTrip implements http.RoundTripper.
func (t *catalogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// HEAD, 204 and 304 carry nothing to decode
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	// codings are listed in the order they were applied, so undo them from the end
	codings := contentCodings(resp.Header.Get("Content-Encoding"))
	body := resp.Body
	decoded := false
	for len(codings) > 0 {
		coding := codings[len(codings)-1]
		if coding == "identity" {
			codings = codings[:len(codings)-1]
			continue
		}
		next, err := decodeBody(coding, body)
		if err != nil {
			body.Close()
			return nil, err
		}
		if next == nil {
			break
		}
		body = next
		codings = codings[:len(codings)-1]
		decoded = true
	}
	if !decoded {
		return resp, nil
	}

	resp.Body = body
	if len(codings) == 0 {
		resp.Header.Del("Content-Encoding")
		resp.Uncompressed = true
	} else {
		resp.Header.Set("Content-Encoding", strings.Join(codings, ", "))
	}
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1

	return resp, nil
}

// decodeBody returns a reader decoding body for the given encoding, or nil when the body
// should be passed through untouched.
func decodeBody(encoding string, body io.ReadCloser) (io.ReadCloser, error) {
	switch encoding {
	case "gzip":
		zr, err := gzip.NewReader(body)
		if err != nil {
			return nil, err
		}
		return &decodedBody{Reader: zr, closers: []io.Closer{zr, body}}, nil
	case "br":
		return &decodedBody{Reader: brotli.NewReader(body), closers: []io.Closer{body}}, nil
	case "zstd":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		rc := zr.IOReadCloser()
		return &decodedBody{Reader: rc, closers: []io.Closer{rc, body}}, nil
	default:
		return nil, nil
	}
}

// decodedBody closes the decoder and the original body together.
type decodedBody struct {
	io.Reader
	closers []io.Closer
}

func (d *decodedBody) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// contentCodings splits a Content-Encoding header into its lowercased codings, in the order
// they were applied.
func contentCodings(header string) []string {
	var codings []string
	for _, part := range strings.Split(header, ",") {
		if coding := strings.ToLower(strings.TrimSpace(part)); coding != "" {
			codings = append(codings, coding)
		}
	}
	return codings
}
