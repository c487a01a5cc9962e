// SPDX-License-Identifier: MIT

package segmentation

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a JSON object mapping each word to its boundary records,
//
//	{"cat": [{"onset": 0, "offset": 300000, "label": "k"}, ...], ...}
//
// and builds a Set from it. Unknown fields are rejected, and so is a word
// that appears twice (ErrDuplicateWord): a plain map decode would keep the
// last list and silently drop the other.
func Decode(r io.Reader, opts ...Option) (*Set, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	records := make(map[string][]Record)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("Decode: %w", err)
		}
		word, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("Decode: unexpected %v", tok)
		}
		if _, dup := records[word]; dup {
			return nil, fmt.Errorf("Decode: word %q: %w", word, ErrDuplicateWord)
		}
		var recs []Record
		if err = dec.Decode(&recs); err != nil {
			return nil, fmt.Errorf("Decode: word %q: %w", word, err)
		}
		records[word] = recs
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}

	return New(records, opts...)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}

	return nil
}
