package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL returns the Gravatar avatar URL for an email address.
// Falls back to 80px when size is not positive; "d=mp" serves the
// mystery-person placeholder for addresses without an avatar.
func GravatarURL(email string, size int) string {
	if size <= 0 {
		size = 80
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))

	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&d=mp", hash, size)
}
