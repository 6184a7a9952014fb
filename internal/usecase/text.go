package usecase

import (
	"strings"
	"unicode"
)

// unsafeGatewayChars are stripped from free text sent to the gateway.
const unsafeGatewayChars = "<>\"'`&;\\|{}[]^~$#%*=+?"

// CleanText removes characters the gateway rejects in item names and collapses
// whitespace.
func CleanText(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		if strings.ContainsRune(unsafeGatewayChars, r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(cleaned), " ")
}
