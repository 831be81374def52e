package cli

import "github.com/yildizm/speedx/internal/emoji"

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}
