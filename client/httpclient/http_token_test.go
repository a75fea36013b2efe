package httpclient

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func Test_ExpiringSoon(t *testing.T) {
	margin := 2 * time.Minute

	noExp := func() string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u"})
		s, err := tok.SignedString([]byte("k"))
		if err != nil {
			t.Fatal(err)
		}
		return s
	}()

	type tc struct {
		name  string
		token string
		want  bool
	}

	cases := []tc{
		{name: "empty token", token: "", want: true},
		{name: "garbage token", token: "not-a-jwt", want: true},
		{name: "undecodable payload", token: "aaa.bbb.ccc", want: true},
		{name: "no exp claim", token: noExp, want: true},
		{name: "long lived", token: mintToken(t, time.Hour), want: false},
		{name: "inside margin", token: mintToken(t, 30*time.Second), want: true},
		{name: "already expired", token: mintToken(t, -time.Minute), want: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExpiringSoon(c.token, margin); got != c.want {
				t.Fatalf("ExpiringSoon(%s) = %v; want %v", c.name, got, c.want)
			}
		})
	}
}

func Test_ExpiringSoon_ZeroMargin(t *testing.T) {
	if ExpiringSoon(mintToken(t, time.Minute), 0) {
		t.Fatal("token a minute from expiry should pass with no margin")
	}
	if !ExpiringSoon(mintToken(t, -time.Second), 0) {
		t.Fatal("expired token must always report expiring")
	}
}
