package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookie = "flash"

// Flash carries a one-time notice across a redirect in a signed cookie. The
// signature keeps the next page from echoing arbitrary client-set text.
type Flash struct {
	secret []byte
}

func NewFlash(secret string) *Flash {
	return &Flash{secret: []byte(secret)}
}

// Set queues msg to be shown on the next rendered page.
func (f *Flash) Set(w http.ResponseWriter, msg string) {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(msg))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    encoded + "." + f.sign(encoded),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})
}

// Pop returns the pending message, if any, and clears the cookie so it is
// shown at most once.
func (f *Flash) Pop(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	parts := strings.SplitN(c.Value, ".", 2)
	if len(parts) != 2 || !hmac.Equal([]byte(parts[1]), []byte(f.sign(parts[0]))) {
		return ""
	}
	msg, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return ""
	}
	return string(msg)
}

func (f *Flash) sign(v string) string {
	mac := hmac.New(sha256.New, f.secret)
	mac.Write([]byte(v))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
