package lang

// IsArabic reports whether text contains at least one character in the Arabic
// Unicode block (U+0600–U+06FF). Script presence is the only signal used to
// route queries to Arabic prompts; an empty string is not Arabic.
func IsArabic(text string) bool {
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}
