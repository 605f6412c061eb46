package emoji

import (
	"strings"
	"sync/atomic"
)

// EmojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":       {"❌", "[ERR]"},
	"warning":     {"⚠️", "[WRN]"},
	"info":        {"ℹ️", "[INF]"},
	"success":     {"✅", "[OK]"},
	"statistics":  {"📊", "[STATS]"},
	"rocket":      {"🚀", "[TS]"},
	"help":        {"❓", "[?]"},
	"target":      {"🎯", "[>]"},
	"scale":       {"⚖️", "[VADER]"},
	"door":        {"🚪", "[EXIT]"},
	"number":      {"🔢", "[#]"},
	"positive":    {"🟢", "[+]"},
	"negative":    {"🔴", "[-]"},
	"other":       {"⚪", "[~]"},
	"tweet":       {"🐦", "[TXT]"},
	"upload":      {"📂", "[FILE]"},
	"backend":     {"🛰️", "[API]"},
	"loading":     {"⏳", "[...]"},
	"spreadsheet": {"📄", "[XLSX]"},
	"chart":       {"📈", "[PNG]"},
	"watch":       {"👀", "[WATCH]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if IsEmojiDisabled() {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]" // unknown key
}

// ForLabel returns the marker for a sentiment label
func ForLabel(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "positive":
		return GetEmoji("positive")
	case "negative":
		return GetEmoji("negative")
	default:
		return GetEmoji("other")
	}
}
