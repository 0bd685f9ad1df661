package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// Encode renders params as an "&"-joined list of key=value pairs.
//
// List values produce one pair per element. With indexed set the key gets a
// positional suffix ("key[0]"), otherwise the empty suffix ("key[]"). The
// suffix is part of the key and is escaped along with it.
func Encode(params Params, indexed bool) string {
	if len(params) == 0 {
		return ""
	}

	var b strings.Builder
	first := true
	pair := func(key, value string) {
		if !first {
			b.WriteByte('&')
		}
		first = false
		b.WriteString(Escape(key))
		b.WriteByte('=')
		b.WriteString(Escape(value))
	}

	for _, p := range params {
		if !p.Value.list {
			value := ""
			if len(p.Value.items) > 0 {
				value = p.Value.items[0]
			}
			pair(p.Key, value)
			continue
		}
		for i, item := range p.Value.items {
			if indexed {
				pair(p.Key+"["+strconv.Itoa(i)+"]", item)
			} else {
				pair(p.Key+"[]", item)
			}
		}
	}

	return b.String()
}

// Escape applies form encoding to s.
func Escape(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isLiteral(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isLiteral(c):
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

func isLiteral(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.':
		return true
	}
	return false
}

// Decode splits an encoded string back into ordered scalar pairs. Array
// suffixes are left on the keys.
func Decode(encoded string) (Params, error) {
	if encoded == "" {
		return Params{}, nil
	}

	pairs := strings.Split(encoded, "&")
	params := make(Params, 0, len(pairs))
	for _, pair := range pairs {
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("decoding key %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("decoding value of %q: %w", key, err)
		}
		params = append(params, Param{Key: key, Value: String(value)})
	}
	return params, nil
}
