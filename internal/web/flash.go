package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	flashCookie = "fyyur_flash"
	flashTTL    = 5 * time.Minute
)

type flashClaims struct {
	Messages []string `json:"msgs"`
	jwt.RegisteredClaims
}

// Flasher carries one-shot messages across a redirect in a signed cookie.
type Flasher struct {
	secret []byte
	now    func() time.Time
}

func NewFlasher(secret string) *Flasher {
	return &Flasher{secret: []byte(secret), now: time.Now}
}

// Set stores msgs for the next request.
func (f *Flasher) Set(w http.ResponseWriter, msgs ...string) error {
	now := f.now()
	claims := flashClaims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(f.secret)
	if err != nil {
		return fmt.Errorf("sign flash: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(flashTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending messages and clears the cookie. A missing,
// expired or tampered cookie yields no messages.
func (f *Flasher) Pop(w http.ResponseWriter, r *http.Request) []string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	var claims flashClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (any, error) {
		return f.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(f.now))
	if err != nil {
		return nil
	}
	return claims.Messages
}
