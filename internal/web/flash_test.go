package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// carryCookies copies Set-Cookie headers from a response onto a new request,
// the way a browser does across a redirect.
func carryCookies(t *testing.T, w *httptest.ResponseRecorder, r *http.Request) {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
}

func TestFlashRoundTrip(t *testing.T) {
	f := NewFlash("test-secret")

	w1 := httptest.NewRecorder()
	f.Set(w1, "Done! Check your email for new password.")

	r2 := httptest.NewRequest("GET", "/login", nil)
	carryCookies(t, w1, r2)
	w2 := httptest.NewRecorder()

	if got := f.Pop(w2, r2); got != "Done! Check your email for new password." {
		t.Fatalf("Pop = %q", got)
	}
}

func TestFlashPopClearsCookie(t *testing.T) {
	f := NewFlash("test-secret")

	w1 := httptest.NewRecorder()
	f.Set(w1, "once")

	r2 := httptest.NewRequest("GET", "/", nil)
	carryCookies(t, w1, r2)
	w2 := httptest.NewRecorder()
	f.Pop(w2, r2)

	var cleared bool
	for _, c := range w2.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("Pop did not expire the flash cookie")
	}
}

func TestFlashMissingCookie(t *testing.T) {
	f := NewFlash("test-secret")
	r := httptest.NewRequest("GET", "/", nil)
	if got := f.Pop(httptest.NewRecorder(), r); got != "" {
		t.Fatalf("Pop without cookie = %q, want empty", got)
	}
}

func TestFlashRejectsTamperedValue(t *testing.T) {
	f := NewFlash("test-secret")

	w1 := httptest.NewRecorder()
	f.Set(w1, "real message")
	cookie := w1.Result().Cookies()[0]

	r2 := httptest.NewRequest("GET", "/", nil)
	r2.AddCookie(&http.Cookie{Name: cookie.Name, Value: "Zm9yZ2Vk." + "bogus-signature"})
	if got := f.Pop(httptest.NewRecorder(), r2); got != "" {
		t.Fatalf("Pop of tampered cookie = %q, want empty", got)
	}
}

func TestFlashRejectsOtherSecret(t *testing.T) {
	setter := NewFlash("secret-a")
	popper := NewFlash("secret-b")

	w1 := httptest.NewRecorder()
	setter.Set(w1, "cross-signed")

	r2 := httptest.NewRequest("GET", "/", nil)
	carryCookies(t, w1, r2)
	if got := popper.Pop(httptest.NewRecorder(), r2); got != "" {
		t.Fatalf("Pop with wrong secret = %q, want empty", got)
	}
}
