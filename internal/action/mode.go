package action

import (
	"os"
	"strconv"
)

// parseMode parses an octal mode string ("0644"), returning 0 (meaning
// "use the source's mode" or the atom's own default) for an empty string.
func parseMode(s string) os.FileMode {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0
	}
	return os.FileMode(n)
}
