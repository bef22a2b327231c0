package audit

import (
	"log"
	"sync"
	"unicode/utf8"

	"chatbot-service/internal/domain"

	"github.com/pkoukk/tiktoken-go"
)

// tokenEncoding approximates the tokenizers of the served models.
const tokenEncoding = "cl100k_base"

var (
	encoderOnce sync.Once
	encoder     *tiktoken.Tiktoken
)

// LoadTokenizer loads the encoding, which is downloaded on first use. It
// reports whether exact counts are available. Calling it at startup keeps the
// download off the first recorded exchange.
func LoadTokenizer() bool {
	encoderOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tokenEncoding)
		if err != nil {
			log.Printf("[AUDIT] WARNING: %s encoding unavailable, estimating token counts: %v", tokenEncoding, err)
			return
		}
		encoder = enc
	})
	return encoder != nil
}

// CountTokens returns the number of tokens in text. When the encoding can't
// be loaded it falls back to ~4 characters per token.
func CountTokens(text string) int {
	if !LoadTokenizer() {
		return (utf8.RuneCountInString(text) + 3) / 4
	}
	return len(encoder.Encode(text, nil, nil))
}

// CountConversationTokens sums the tokens of every message's content.
func CountConversationTokens(conv []domain.Message) int {
	total := 0
	for _, m := range conv {
		total += CountTokens(m.Content)
	}
	return total
}
