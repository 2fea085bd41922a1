package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Орфография", "орфография"},
		{"орфография ", "орфография"},
		{"  Вводные  слова  ", "вводные-слова"},
		{"ЖИ-ШИ", "жи-ши"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeWord(tt.in), "%q", tt.in)
	}
}
