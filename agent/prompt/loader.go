package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/waiter.txt
var waiterRaw string

// Waiter returns the trimmed system prompt for the ordering assistant.
func Waiter() string {
	return strings.TrimSpace(waiterRaw)
}
