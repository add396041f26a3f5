package source

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// PEP 263: кодировка объявляется в первой или второй строке файла.
var codingCookieRe = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-_.a-zA-Z0-9]+)`)

// codingCookie scans the first two lines for a PEP 263 coding declaration and
// returns the declared encoding name. UTF-8 spellings are reported as absent
// since no transcoding is needed for them.
func codingCookie(content []byte) (string, bool) {
	rest := content
	for i := 0; i < 2; i++ {
		line := rest
		if idx := bytes.IndexByte(rest, '\n'); idx >= 0 {
			line = rest[:idx]
			rest = rest[idx+1:]
		} else {
			rest = nil
		}
		if m := codingCookieRe.FindSubmatch(line); m != nil {
			name := string(m[1])
			switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
			case "utf-8", "utf8", "ascii", "us-ascii":
				return "", false
			}
			return name, true
		}
		if rest == nil {
			break
		}
	}
	return "", false
}

// decodeContent transcodes content from the named encoding into UTF-8.
func decodeContent(content []byte, name string) ([]byte, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown source encoding %q", name)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), content)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}
	return out, nil
}
