package jsonrepair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepair_StrictParsePassthrough(t *testing.T) {
	assert.Equal(t, map[string]any{"a": float64(1)}, Repair(`{"a": 1}`))
	assert.Equal(t, []any{float64(1), float64(2)}, Repair(` [1, 2] `))
	assert.Equal(t, "plain", Repair(`"plain"`))
}

func TestRepair_TrailingComma(t *testing.T) {
	assert.Equal(t, map[string]any{"a": float64(1)}, Repair(`{"a": 1,}`))
	assert.Equal(t, []any{float64(1), float64(2)}, Repair(`[1, 2,]`))
}

func TestRepair_NotJSONReturnsNil(t *testing.T) {
	assert.Nil(t, Repair("not json at all"))
}

func TestRepair_EmptyInput(t *testing.T) {
	assert.Nil(t, Repair(""))
	assert.Nil(t, Repair("   \n\t"))
}

func TestRepair_DelimiterPairExtraction(t *testing.T) {
	out := Repair(`prefix {"a":1} suffix`, WithPair('{', '}'))
	assert.Equal(t, map[string]any{"a": float64(1)}, out)
}

func TestRepair_PairExtractsFirstBalancedSpan(t *testing.T) {
	out := Repair(`x {"a": {"b": 2}} y {"c": 3}`, WithPair('{', '}'))
	assert.Equal(t, map[string]any{"a": map[string]any{"b": float64(2)}}, out)
}

func TestRepair_PairWithNoCloseRepairsRemainder(t *testing.T) {
	out := Repair(`The call is {"a": 1, "b": [true`, WithPair('{', '}'))
	assert.Equal(t, map[string]any{"a": float64(1), "b": []any{true}}, out)
}

func TestRepair_UnquotedKeys(t *testing.T) {
	out := Repair(`{a: 1, other_key: "v"}`)
	assert.Equal(t, map[string]any{"a": float64(1), "other_key": "v"}, out)
}

func TestRepair_SingleQuotes(t *testing.T) {
	out := Repair(`{'a': 'it\'s fine'}`)
	assert.Equal(t, map[string]any{"a": "it's fine"}, out)
}

func TestRepair_TruncatedString(t *testing.T) {
	out := Repair(`{"a": "hello`)
	assert.Equal(t, map[string]any{"a": "hello"}, out)
}

func TestRepair_UnbalancedBrackets(t *testing.T) {
	out := Repair(`{"a": [1, 2`)
	assert.Equal(t, map[string]any{"a": []any{float64(1), float64(2)}}, out)
}

func TestRepair_TruncatedAfterComma(t *testing.T) {
	out := Repair(`{"a": 1,`)
	assert.Equal(t, map[string]any{"a": float64(1)}, out)
}

func TestRepair_UnrecoverableReturnsNilNotError(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Nil(t, Repair(`::: garbage ::`))
	})
}
