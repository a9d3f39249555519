// Package security keeps secrets out of the bridge's own output. Argument
// mappings are logged on every dispatch; token-like values must never reach
// the log stream.
package security

import "strings"

var sensitiveSubstrings = []string{
	"token",
	"password",
	"passwd",
	"passphrase",
	"secret",
	"credential",
	"authorization",
	"api_key",
	"apikey",
	"access_key",
	"private_key",
	"bearer",
	"cookie",
	"session",
	"jwt",
	"signature",
}

// Keys that trip a substring match but carry no secret material. Gmail's
// pagination cursor is the common offender.
var allowList = map[string]struct{}{
	"page_token":      {},
	"next_page_token": {},
}

// RedactArguments returns a copy of arguments with sensitive values replaced.
// Nested mappings are walked; other values are copied as-is.
func RedactArguments(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	redacted := make(map[string]any, len(values))
	for key, value := range values {
		if isSensitiveKey(key) {
			redacted[key] = "***"
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			redacted[key] = RedactArguments(nested)
			continue
		}
		redacted[key] = value
	}
	return redacted
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	if _, ok := allowList[lower]; ok {
		return false
	}
	for _, part := range sensitiveSubstrings {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
