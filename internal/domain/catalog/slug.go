package catalog

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SlugSaltLength is the number of hex characters appended to a
// generated slug to keep it unique across same-named records.
const SlugSaltLength = 5

var slugTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases the input, strips diacritics and collapses any
// run of non-alphanumeric characters into a single hyphen.
func Slugify(value string) string {
	folded, _, err := transform.String(slugTransformer, value)
	if err != nil {
		folded = value
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// NewSlug builds a slug from the given name with a short random hex
// salt appended, e.g. "wireless-mouse-3f9a1".
func NewSlug(name string) string {
	base := Slugify(name)
	salt := strings.ReplaceAll(uuid.New().String(), "-", "")[:SlugSaltLength]
	if base == "" {
		return salt
	}
	return base + "-" + salt
}

// SlugBase strips the trailing hex salt from a slug produced by
// NewSlug, returning the slug unchanged when no salt is present.
func SlugBase(slug string) string {
	idx := strings.LastIndexByte(slug, '-')
	if idx <= 0 {
		return slug
	}
	suffix := slug[idx+1:]
	if len(suffix) != SlugSaltLength || !isHex(suffix) {
		return slug
	}
	return slug[:idx]
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
