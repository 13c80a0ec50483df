package domain

import (
	"encoding/json"
	"testing"
)

func TestPrice_MarshalsAsNumber(t *testing.T) {
	b, err := json.Marshal(Product{ID: 1, Price: MustPrice("299.9")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1,"name":"","price":299.90,"category":"","image":"","description":""}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestPrice_UnmarshalAcceptsNumberAndString(t *testing.T) {
	for _, in := range []string{`129.9`, `"129.90"`} {
		var p Price
		if err := json.Unmarshal([]byte(in), &p); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if !p.Equal(MustPrice("129.90").Decimal) {
			t.Fatalf("unmarshal %s: got %s", in, p.String())
		}
	}
}

func TestUser_ProfileOmitsSecrets(t *testing.T) {
	u := &User{ID: "abc", Name: "Ana Souza", Email: "ana@example.com", PasswordHash: "$2a$10$x"}
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"name":"Ana Souza","email":"ana@example.com"}` {
		t.Fatalf("unexpected user json: %s", b)
	}
	if u.Profile() != (Profile{Name: "Ana Souza", Email: "ana@example.com"}) {
		t.Fatalf("unexpected profile: %+v", u.Profile())
	}
}
