package web

import (
	"net/http"
	"strings"
)

// Form fields are validated for presence only; the registration email must
// additionally look like an address. To-do item fields are deliberately
// unvalidated free text and have no form type here.

type LoginForm struct {
	Name     string
	Password string
}

func ParseLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Name:     r.PostFormValue("name"),
		Password: r.PostFormValue("password"),
	}
}

func (f LoginForm) Valid() bool {
	return f.Name != "" && f.Password != ""
}

type RegisterForm struct {
	Name     string
	Password string
	Email    string
}

func ParseRegisterForm(r *http.Request) RegisterForm {
	return RegisterForm{
		Name:     r.PostFormValue("name"),
		Password: r.PostFormValue("password"),
		Email:    r.PostFormValue("email"),
	}
}

func (f RegisterForm) Valid() bool {
	return f.Name != "" && f.Password != "" && ValidEmail(f.Email)
}

type RetrieveForm struct {
	Email string
}

func ParseRetrieveForm(r *http.Request) RetrieveForm {
	return RetrieveForm{Email: r.PostFormValue("email")}
}

func (f RetrieveForm) Valid() bool {
	return f.Email != ""
}

// ValidEmail loosely checks shape: exactly one "@" with non-empty local and
// domain parts, no whitespace. Real validation happens when mail is sent.
func ValidEmail(s string) bool {
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	return at < len(s)-1
}
