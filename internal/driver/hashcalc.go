package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"reprint/internal/printer"
	"reprint/internal/transform"
)

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// writeField пишет длину перед значением, чтобы склейки не совпадали.
func writeField(h hash.Hash, s string) {
	_, _ = fmt.Fprintf(h, "%d:", len(s))
	_, _ = h.Write([]byte(s))
}

// cacheKey: H(schema || content || recipe || options).
func cacheKey(content []byte, recipe string, opts printer.Options) Digest {
	h := sha256.New()
	writeField(h, fmt.Sprintf("reprint/%d", diskCacheSchemaVersion))
	writeField(h, string(content))
	writeField(h, recipe)
	writeField(h, optionsFingerprint(opts))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func optionsFingerprint(o printer.Options) string {
	return fmt.Sprintf("tab=%d tabs=%t quote=%s term=%q reuse=%t comma=%t",
		o.TabWidth, o.UseTabs, o.Quote, o.LineTerminator, o.ReuseWhitespace, o.TrailingComma)
}

// RecipeFingerprint renders r as canonical text; replacement fragments are
// printed generically so equal recipes give equal keys.
func RecipeFingerprint(r transform.Recipe) (string, error) {
	var sb strings.Builder
	for _, rule := range r.Rules {
		switch rule := rule.(type) {
		case transform.Rename:
			fmt.Fprintf(&sb, "rename %q %q\n", rule.From, rule.To)
		case transform.ReplaceLiteral:
			to, err := printer.New(printer.DefaultOptions(), nil).PrintGenerically(rule.To)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&sb, "replace %s %q %q\n", rule.Kind, rule.From, to.String())
		default:
			return "", fmt.Errorf("%w: %T", transform.ErrUnknownRule, rule)
		}
	}
	return sb.String(), nil
}
