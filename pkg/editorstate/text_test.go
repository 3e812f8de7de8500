package editorstate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"BP", 2},
		{"Zürich", 6},
		{"日本", 2},
		{"a😀b", 4},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Length(tt.in))
		})
	}
}

func TestSlice(t *testing.T) {
	assert.Equal(t, "BP", Slice("BP petroleum", 0, 2))
	assert.Equal(t, "petroleum", Slice("BP petroleum", 3, 9))
	assert.Equal(t, "😀b", Slice("a😀b", 1, 3))
	assert.Equal(t, "", Slice("abc", 10, 2))
	assert.Equal(t, "bc", Slice("abc", 1, 50))
	assert.Equal(t, "abc", Slice("abc", -4, 3))
}

func TestDefaultKeyGen(t *testing.T) {
	a := DefaultKeyGen()
	b := DefaultKeyGen()
	assert.Len(t, a, 5)
	assert.NotEqual(t, a, b)
}

func TestNewBlockEncodesEmptySlices(t *testing.T) {
	raw, err := json.Marshal(NewBlock("k1", ""))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []any{}, decoded["entityRanges"])
	assert.Equal(t, []any{}, decoded["inlineStyleRanges"])
	assert.Equal(t, "unstyled", decoded["type"])
}

func TestPlainText(t *testing.T) {
	state := ContentState{Blocks: []Block{NewBlock("a", "one"), NewBlock("b", "two")}}
	assert.Equal(t, "one\ntwo", state.PlainText())
}
