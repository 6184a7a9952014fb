package usecase

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Camisa <b>\"Azul\"</b>\n  talla M", "Camisa bAzul/b talla M"},
		{"  Café  con leche ", "Café con leche"},
		{"50% off {promo}", "50 off promo"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CleanText(tc.in); got != tc.want {
			t.Fatalf("CleanText(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
