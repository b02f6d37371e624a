package dispatch

import "github.com/dzonerzy/go-dispatch/internal/pool"

// Split tokenizes a raw command line. Whitespace outside quotes separates
// tokens, an unescaped double quote toggles quoting and is dropped, and \"
// yields a literal quote. A quoted empty string produces an empty token.
// An unterminated quote ends the last token at the end of input.
func Split(input string) []string {
	tokens := make([]string, 0, 8)

	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	var (
		quoted  bool
		pending bool // a token has started, even if it is still empty
	)

	flush := func() {
		if pending {
			tokens = append(tokens, string(*buf))
			*buf = (*buf)[:0]
			pending = false
		}
	}

	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch {
		case ch == '\\' && i+1 < len(input) && input[i+1] == '"':
			*buf = append(*buf, '"')
			pending = true
			i++
		case ch == '"':
			quoted = !quoted
			pending = true
		case !quoted && isSpace(ch):
			flush()
		default:
			*buf = append(*buf, ch)
			pending = true
		}
	}
	flush()

	return tokens
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}
