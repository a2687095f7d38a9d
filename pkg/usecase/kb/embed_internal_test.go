package kb

import (
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/gt"
)

func TestTruncate(t *testing.T) {
	gt.Equal(t, truncate("short", 50), "short")
	gt.Equal(t, truncate("abcdef", 3), "abc...")

	// Multi-byte text is cut on rune boundaries, never mid-sequence.
	cut := truncate("パスワードをリセットするには", 5)
	gt.Equal(t, cut, "パスワード...")
	gt.True(t, utf8.ValidString(cut))

	exact := truncate("日本語", 3)
	gt.Equal(t, exact, "日本語")
}
