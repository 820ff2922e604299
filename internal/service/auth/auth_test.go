package auth

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "11 4444 5555", want: "+541144445555"},
		{in: "+54 9 11 4444 5555", want: "+5491144445555"},
		{in: "+1 212 555 0100", want: "+12125550100"},
		{in: "123", wantErr: true},
		{in: "no es un teléfono", wantErr: true},
	}

	for _, c := range cases {
		got, err := NormalizePhone(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("NormalizePhone(%q) = %q, want error", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizePhone(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
