package dispatch

import (
	"strings"
	"unicode"

	"github.com/dzonerzy/go-dispatch/internal/intern"
)

// Signature converts an identifier (PascalCase, camelCase, acronyms,
// SCREAMING_CASE) into the kebab-case token used on the command line.
//
//	Signature("HelloWorld")  == "hello-world"
//	Signature("HTTPRequest") == "http-request"
//	Signature("Word")        == "word"
func Signature(name string) string {
	return signatures.Get(name)
}

// signatures memoizes Signature; option names repeat on every lookup.
var signatures = intern.NewTable(signature, intern.DefaultLimit)

func signature(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)

	lastHyphen := true // suppresses leading and doubled separators
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
			continue
		}

		if unicode.IsUpper(r) && i > 0 && !lastHyphen {
			prev := runes[i-1]
			startsWord := unicode.IsLower(prev) || unicode.IsDigit(prev)
			if !startsWord && unicode.IsUpper(prev) && i+1 < len(runes) {
				startsWord = unicode.IsLower(runes[i+1])
			}
			if startsWord {
				b.WriteByte('-')
			}
		}

		b.WriteRune(unicode.ToLower(r))
		lastHyphen = false
	}

	return strings.TrimSuffix(b.String(), "-")
}

// ParseSignature converts a kebab-case signature back into PascalCase.
func ParseSignature(sig string) string {
	var b strings.Builder
	b.Grow(len(sig))
	for _, part := range strings.Split(sig, "-") {
		if part == "" {
			continue
		}
		runes := []rune(part)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}
