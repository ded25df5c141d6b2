package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Carlos@Exemplo.COM  ", "carlos@exemplo.com"},
		{"ja@minusculo.com", "ja@minusculo.com"},
		{"\tcom.tab@exemplo.com\n", "com.tab@exemplo.com"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeEmail(tc.in))
	}
}
