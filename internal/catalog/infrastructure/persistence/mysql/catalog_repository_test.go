package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeEscaper(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "iphone", "iphone"},
		{"percent", "100%棉", `100\%棉`},
		{"underscore", "usb_c", `usb\_c`},
		{"backslash", `a\b`, `a\\b`},
		{"mixed", `%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, likeEscaper.Replace(tt.in))
		})
	}
}
