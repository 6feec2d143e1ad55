package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"11 digit mobile gets country code", "11987654321", "5511987654321"},
		{"10 digit landline gets country code", "1133334444", "551133334444"},
		{"formatted input is stripped first", "(11) 98765-4321", "5511987654321"},
		{"already international passes through", "5511987654321", "5511987654321"},
		{"short number passes through", "4321", "4321"},
		{"letters are dropped", "tel: 11 98765-4321", "5511987654321"},
		{"empty input", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePhone(tc.in, "55"))
		})
	}
}
