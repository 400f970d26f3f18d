package entity

import (
	"math"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawPair_DecodesSearchEnvelope(t *testing.T) {
	body := `{"schemaVersion":"1.0.0","pairs":[{"chainId":"base","baseToken":{"symbol":"RAD"},"fdv":1250000,"priceUsd":"0.5"}]}`

	var resp SearchResponse
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Pairs, 1)

	p := resp.Pairs[0]
	chain, ok := p.String("chainId")
	assert.True(t, ok)
	assert.Equal(t, "base", chain)

	sym, ok := p.String("baseToken", "symbol")
	assert.True(t, ok)
	assert.Equal(t, "RAD", sym)

	fdv, ok := p.Number("fdv")
	assert.True(t, ok)
	assert.Equal(t, 1250000.0, fdv)

	price, ok := p.Number("priceUsd")
	assert.True(t, ok)
	assert.Equal(t, 0.5, price)
}

func TestRawPair_LookupMissingAndMistyped(t *testing.T) {
	p := RawPair{
		"name":      "",
		"nested":    map[string]any{"value": nil},
		"notObject": 12.0,
	}

	_, ok := p.Lookup()
	assert.False(t, ok)
	_, ok = p.Lookup("absent")
	assert.False(t, ok)
	_, ok = p.Lookup("nested", "value")
	assert.False(t, ok, "explicit null is absent")
	_, ok = p.Lookup("notObject", "child")
	assert.False(t, ok)
	_, ok = p.String("name")
	assert.False(t, ok, "empty string is absent")
	_, ok = p.String("notObject")
	assert.False(t, ok)

	var nilPair RawPair
	_, ok = nilPair.Lookup("x")
	assert.False(t, ok)
}

func TestRawPair_NumberRejectsInvalid(t *testing.T) {
	p := RawPair{
		"negative": -1.0,
		"nan":      math.NaN(),
		"inf":      math.Inf(1),
		"text":     "ten",
		"bool":     true,
		"int":      7,
		"padded":   " 42.5 ",
	}

	for _, key := range []string{"negative", "nan", "inf", "text", "bool"} {
		_, ok := p.Number(key)
		assert.False(t, ok, key)
	}

	n, ok := p.Number("int")
	assert.True(t, ok)
	assert.Equal(t, 7.0, n)

	n, ok = p.Number("padded")
	assert.True(t, ok)
	assert.Equal(t, 42.5, n)
}

func TestRawPair_Map(t *testing.T) {
	p := RawPair{"liquidity": map[string]any{"usd": 10.0}}

	liq, ok := p.Map("liquidity")
	require.True(t, ok)
	usd, ok := liq.Number("usd")
	assert.True(t, ok)
	assert.Equal(t, 10.0, usd)

	_, ok = p.Map("liquidity", "usd")
	assert.False(t, ok)
}
