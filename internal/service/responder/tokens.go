package responder

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// GPT-2 byte pair encoding
const gpt2Encoding = "r50k_base"

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding(gpt2Encoding)
	})
	return tk, tkErr
}

// CountTokens returns the GPT-2 token count of text, or -1 if the encoding
// could not be loaded.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	enc, err := getTokenizer()
	if err != nil {
		return -1
	}
	return len(enc.Encode(text, nil, nil))
}
