package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "fresh apples", "fresh apples"},
		{"angle brackets stripped", "a<b>c", "abc"},
		{"script tag removed", "hello<script>alert(1)</script>world", "helloworld"},
		{"iframe removed", `<iframe src="x"></iframe>ok`, "ok"},
		{"event handler stripped", `img onerror=alert(1)`, "img alert(1)"},
		{"ampersand escaped", "tom & jerry", "tom &amp; jerry"},
		{"quotes escaped", `say "hi"`, "say &quot;hi&quot;"},
		{"whitespace trimmed", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("shopper@example.com"))
	assert.True(t, Email("first.last+tag@sub.example.co"))

	assert.False(t, Email("not-an-email"))
	assert.False(t, Email("missing@tld"))
	assert.False(t, Email("@example.com"))
	assert.False(t, Email(strings.Repeat("a", 250)+"@example.com"))
}

func TestPhone(t *testing.T) {
	assert.True(t, Phone("+14155552671"))
	assert.True(t, Phone("(415) 555-2671"))
	assert.True(t, Phone("415-555-2671"))

	assert.False(t, Phone("0123456"))
	assert.False(t, Phone("phone"))
	assert.False(t, Phone("+1234567890123456789"))
}

func TestName(t *testing.T) {
	assert.True(t, Name("Amira Khan"))
	assert.True(t, Name("Jo"))

	assert.False(t, Name("A"))
	assert.False(t, Name("name42"))
	assert.False(t, Name(strings.Repeat("a", 51)))
}

func TestAddress(t *testing.T) {
	assert.True(t, Address("42 Market Street, Springfield"))

	assert.False(t, Address("too short"))
	assert.False(t, Address("12 Baker St & Main Ave, Springfield"))
	assert.False(t, Address(strings.Repeat("a", 201)))
}

func TestPasswordWeak(t *testing.T) {
	report := Password("weak")

	assert.False(t, report.Valid())
	assert.Equal(t, []string{"length", "uppercase", "numbers", "special"}, report.Missing())
	assert.True(t, report.Lowercase)
	assert.Equal(t, 1, report.Score())
}

func TestPasswordStrong(t *testing.T) {
	report := Password("Str0ng!pass")

	assert.True(t, report.Valid())
	assert.Empty(t, report.Missing())
	assert.Equal(t, 5, report.Score())
}
