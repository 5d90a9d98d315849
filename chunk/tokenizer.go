package chunk

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer converts text to and from token IDs.
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

// encodingName is the BPE vocabulary used for window sizing. It matches
// what the embedding models downstream count tokens with.
const encodingName = "cl100k_base"

type tiktokenTokenizer struct {
	encoding *tiktoken.Tiktoken
}

// NewTokenizer creates a Tokenizer backed by the cl100k_base encoding.
func NewTokenizer() (Tokenizer, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", encodingName, err)
	}
	return &tiktokenTokenizer{encoding: encoding}, nil
}

func (t *tiktokenTokenizer) Encode(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

func (t *tiktokenTokenizer) Decode(tokens []int) string {
	return t.encoding.Decode(tokens)
}
