package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"ascii", []byte("Hello"), "Hello"},
		{"kana", []byte{0x82, 0xa0, 0x82, 0xa2}, "あい"},
		{"kanji", []byte{0x93, 0xfa, 0x96, 0x7b}, "日本"},
		{"halfwidth", []byte{0xb1}, "ｱ"},
		{"markers", []byte("<C:5>"), "<C:5>"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, ok := Decode(c.in)
			assert.True(t, ok)
			assert.Equal(t, c.want, s)
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	// 0x82 is a lead byte; 0x20 cannot follow it
	s, ok := Decode([]byte{0x41, 0x82, 0x20})
	assert.False(t, ok)
	assert.Contains(t, s, "�")
	assert.Equal(t, "A", s[:1])
}

func TestEncode(t *testing.T) {
	b, ok := Encode("あい")
	assert.True(t, ok)
	assert.Equal(t, []byte{0x82, 0xa0, 0x82, 0xa2}, b)

	b, ok = Encode("")
	assert.True(t, ok)
	assert.Empty(t, b)
}

func TestEncodeUnsupported(t *testing.T) {
	b, ok := Encode("a\U0001F600b")
	assert.False(t, ok)
	assert.Equal(t, byte('a'), b[0])
	assert.Equal(t, byte('b'), b[len(b)-1])
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"最初の本", "Page 1", "ｶﾀｶﾅ", "A~B\\C"} {
		b, ok := Encode(s)
		assert.True(t, ok, s)
		back, ok := Decode(b)
		assert.True(t, ok, s)
		assert.Equal(t, s, back)
	}
}
