package validation

// Account identity bounds
const (
	MinAccountIDLength = 2
	MaxAccountIDLength = 64
)

// IsValidAccountID reports whether id is a well-formed, addressable account:
// 2 to 64 characters of lowercase letters and digits, separated by single
// '-', '_' or '.' characters, neither leading nor trailing.
func IsValidAccountID(id string) bool {
	if len(id) < MinAccountIDLength || len(id) > MaxAccountIDLength {
		return false
	}

	lastWasSeparator := true
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			lastWasSeparator = false
		case c == '-' || c == '_' || c == '.':
			if lastWasSeparator {
				return false
			}
			lastWasSeparator = true
		default:
			return false
		}
	}
	return !lastWasSeparator
}
