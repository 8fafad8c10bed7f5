package prompt

// EstimateTokens approximates the token count of text at roughly 4
// characters per token. Good enough for showing context size; not tied
// to any specific tokenizer.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	tokens := len([]rune(text)) / 4
	if tokens == 0 {
		return 1
	}
	return tokens
}
