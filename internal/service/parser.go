package service

import (
	"strings"
	"unicode"
)

// ParseCustomerDetails extracts a customer email and tax ID (CUI) from free
// text. Tokens are split on whitespace and classified with the email test
// taking precedence over the tax-ID test, so a token matching both counts as
// an email. A tax ID is either purely numeric or starts with the country
// prefix (e.g. "RO") followed by digits. The first match of each kind wins;
// either result may be empty.
func ParseCustomerDetails(text, countryPrefix string) (taxID, email string) {
	for _, token := range strings.Fields(text) {
		token = strings.Trim(token, ".,;:!?")

		if email == "" && looksLikeEmail(token) {
			email = token
			continue
		}
		if taxID == "" && looksLikeTaxID(token, countryPrefix) {
			taxID = token
		}
	}
	return taxID, email
}

func looksLikeEmail(token string) bool {
	return strings.Contains(token, "@") && strings.Contains(token, ".")
}

func looksLikeTaxID(token, countryPrefix string) bool {
	if countryPrefix != "" && strings.HasPrefix(strings.ToUpper(token), countryPrefix) {
		rest := token[len(countryPrefix):]
		return rest != "" && isDigits(rest)
	}
	return token != "" && isDigits(token)
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
