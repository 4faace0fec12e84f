package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errUnterminated = errors.New("unterminated string literal")

// decodeString снимает кавычки и раскрывает escape-последовательности.
// raw приходит из лексера вместе с кавычками.
func decodeString(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != raw[len(raw)-1] || (raw[0] != '"' && raw[0] != '\'') {
		return "", errUnterminated
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, "\\") {
		return body, nil
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(body) {
			return "", errors.New("escape at end of string literal")
		}
		c = body[i]
		i++
		switch c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			if i < len(body) && isDigit(body[i]) {
				return "", errors.New("octal escapes are not supported")
			}
			b.WriteByte(0)
		case '\r':
			// продолжение строки: \ + CRLF или CR
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case '\n':
		case 'x':
			r, n, err := hexRune(body[i:], 2)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += n
		case 'u':
			r, n, err := unicodeEscape(body[i:])
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += n
		default:
			if c >= utf8.RuneSelf {
				r, size := utf8.DecodeRuneInString(body[i-1:])
				i += size - 1
				if r == '\u2028' || r == '\u2029' {
					continue
				}
				b.WriteRune(r)
				continue
			}
			if isDigit(c) {
				return "", fmt.Errorf("invalid escape \\%c", c)
			}
			// \' \" \\ и прочие тождественные escape
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

func unicodeEscape(s string) (rune, int, error) {
	if !strings.HasPrefix(s, "{") {
		return hexRune(s, 4)
	}
	end := strings.IndexByte(s, '}')
	if end < 2 {
		return 0, 0, errors.New("invalid \\u{...} escape")
	}
	v, err := strconv.ParseUint(s[1:end], 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, 0, fmt.Errorf("invalid code point %q", s[1:end])
	}
	return rune(v), end + 1, nil
}

func hexRune(s string, n int) (rune, int, error) {
	if len(s) < n {
		return 0, 0, errors.New("short hex escape")
	}
	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hex escape %q", s[:n])
	}
	return rune(v), n, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
