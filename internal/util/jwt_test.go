package util

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "s3cret")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	id, err := ParseJWT(token, "s3cret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if id != 42 {
		t.Errorf("user id = %d; want 42", id)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseJWT(token, "other"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseJWTRejectsOtherSigningMethods(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": float64(42),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("s3cret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseJWT(token, "s3cret"); err == nil {
		t.Error("expected error for non-HS256 token")
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", ""},
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"case insensitive scheme", "bearer abc", "abc"},
		{"wrong scheme", "Basic abc", ""},
		{"no token", "Bearer", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			if got := ExtractToken(r); got != tc.want {
				t.Errorf("ExtractToken(%q) = %q; want %q", tc.header, got, tc.want)
			}
		})
	}
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword("hunter2", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}
