package emoji

import "testing"

func TestGetEmoji(t *testing.T) {
	defer SetEmojiDisabled(false)

	SetEmojiDisabled(false)
	if got := GetEmoji("error"); got != "❌" {
		t.Errorf("GetEmoji(error) = %q, want ❌", got)
	}

	SetEmojiDisabled(true)
	if !IsEmojiDisabled() {
		t.Fatal("IsEmojiDisabled() = false after disabling")
	}
	if got := GetEmoji("error"); got != "[ERR]" {
		t.Errorf("GetEmoji(error) = %q, want [ERR]", got)
	}

	if got := GetEmoji("no-such-key"); got != "[?]" {
		t.Errorf("GetEmoji(unknown) = %q, want [?]", got)
	}
}
