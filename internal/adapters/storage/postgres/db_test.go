package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "rex", want: "rex"},
		{in: "%", want: `\%`},
		{in: "_", want: `\_`},
		{in: `\`, want: `\\`},
		{in: "50%_off", want: `50\%\_off`},
		{in: `c:\perros`, want: `c:\\perros`},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, escapeLike(tc.in))
		})
	}
}
