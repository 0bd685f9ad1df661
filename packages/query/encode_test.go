package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleParams(bat ...string) Params {
	return Params{
		{Key: "foo", Value: String(" bar")},
		{Key: "baz", Value: Int(1)},
		{Key: "bat", Value: Strings(bat...)},
	}
}

func TestEncode_NonIndexed(t *testing.T) {
	got := Encode(sampleParams("foo", "bar"), false)
	assert.Equal(t, "foo=+bar&baz=1&bat%5B%5D=foo&bat%5B%5D=bar", got)
}

func TestEncode_NonIndexedEscapesElements(t *testing.T) {
	got := Encode(sampleParams("foo", "bar", "baz[12]"), false)
	assert.Equal(t, "foo=+bar&baz=1&bat%5B%5D=foo&bat%5B%5D=bar&bat%5B%5D=baz%5B12%5D", got)
}

func TestEncode_Indexed(t *testing.T) {
	got := Encode(sampleParams("foo", "bar", "baz[12]"), true)
	assert.Equal(t, "foo=+bar&baz=1&bat%5B0%5D=foo&bat%5B1%5D=bar&bat%5B2%5D=baz%5B12%5D", got)
}

func TestEncode_Empty(t *testing.T) {
	assert.Equal(t, "", Encode(nil, false))
	assert.Equal(t, "", Encode(Params{}, true))
}

func TestEncode_EmptyList(t *testing.T) {
	params := Params{
		{Key: "a", Value: String("1")},
		{Key: "none", Value: Strings()},
		{Key: "b", Value: String("2")},
	}
	assert.Equal(t, "a=1&b=2", Encode(params, false))
}

func TestEncode_RepeatedKeys(t *testing.T) {
	params := Params{}.With("k", String("1")).With("k", String("2"))
	assert.Equal(t, "k=1&k=2", params.Encode(false))
}

func TestEncode_ScalarSegments(t *testing.T) {
	params := Params{
		{Key: "name", Value: String("a=b&c")},
		{Key: "pi", Value: Float(3.25)},
		{Key: "on", Value: Bool(true)},
		{Key: "off", Value: Bool(false)},
		{Key: "big", Value: Uint(18446744073709551615)},
	}

	got := Encode(params, false)
	segments := strings.Split(got, "&")
	require.Len(t, segments, len(params))
	for _, seg := range segments {
		assert.Equal(t, 1, strings.Count(seg, "="), seg)
	}
	assert.Equal(t, "name=a%3Db%26c&pi=3.25&on=1&off=0&big=18446744073709551615", got)
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a b", "a+b"},
		{"  ", "++"},
		{"-_.", "-_."},
		{"~", "%7E"},
		{"a/b?c", "a%2Fb%3Fc"},
		{"ü", "%C3%BC"},
		{"100%", "100%25"},
		{"+", "%2B"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Escape(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "%20")
		})
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	params := Params{
		{Key: "q", Value: String("hello world")},
		{Key: "sym", Value: String("a+b=c&d")},
		{Key: "k", Value: String("1")},
		{Key: "k", Value: String("2")},
		{Key: "empty", Value: String("")},
	}

	decoded, err := Decode(Encode(params, false))
	require.NoError(t, err)
	assert.Equal(t, params, decoded)
}

func TestDecode_ListKeepsSuffix(t *testing.T) {
	decoded, err := Decode(Encode(sampleParams("x", "y"), true))
	require.NoError(t, err)

	keys := make([]string, 0, len(decoded))
	for _, p := range decoded {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"foo", "baz", "bat[0]", "bat[1]"}, keys)
	assert.Equal(t, []string{" bar"}, decoded[0].Value.Items())
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode("a=%zz")
	assert.Error(t, err)
}
