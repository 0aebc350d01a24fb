package repository

import (
	"encoding/json"
	"fmt"
)

// encodeGenres renders genres for the JSON column. A nil list is stored as
// an empty array so the NOT NULL constraint holds.
func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeGenres(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var genres []string
	if err := json.Unmarshal(raw, &genres); err != nil {
		return nil, fmt.Errorf("decode genres: %w", err)
	}
	if genres == nil {
		genres = []string{}
	}
	return genres, nil
}
