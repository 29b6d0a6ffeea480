package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nvast/TODO-list/internal/models"
	"github.com/nvast/TODO-list/internal/store"
	"github.com/nvast/TODO-list/internal/web"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, hashedPw string) (*models.User, error)
	GetUserByName(ctx context.Context, name string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, hashedPw string) error
}

// Mailer dispatches a freshly generated password to a user.
type Mailer interface {
	SendNewPassword(to, password string) error
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users    UserStore
	sessions SessionStore
	mailer   Mailer
	pages    *web.Renderer
	flash    *web.Flash
}

func NewHandler(users UserStore, sessions SessionStore, mailer Mailer, pages *web.Renderer, flash *web.Flash) *Handler {
	return &Handler{users: users, sessions: sessions, mailer: mailer, pages: pages, flash: flash}
}

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, r, "login.html", nil)
}

// Login authenticates by username and establishes a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	form := web.ParseLoginForm(r)
	if !form.Valid() {
		h.pages.Render(w, r, "login.html", nil)
		return
	}

	user, err := h.users.GetUserByName(r.Context(), form.Name)
	if errors.Is(err, store.ErrNotFound) {
		h.flash.Set(w, "User with this name doesn't exist.")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if err != nil {
		log.Printf("login lookup: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		h.flash.Set(w, "Incorrect password, try again.")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		log.Printf("login session: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/todo", http.StatusFound)
}

func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, r, "register.html", nil)
}

// Register creates a new user and logs them in. Duplicate names and emails
// are checked before the insert so they surface as a flash, not an error.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	form := web.ParseRegisterForm(r)
	if !form.Valid() {
		h.pages.Render(w, r, "register.html", nil)
		return
	}

	if _, err := h.users.GetUserByName(r.Context(), form.Name); err == nil {
		h.pages.RenderWithFlash(w, "register.html", "This name already exists, choose another one.", nil)
		return
	}
	if _, err := h.users.GetUserByEmail(r.Context(), form.Email); err == nil {
		h.pages.RenderWithFlash(w, "register.html", "User with this email already exists, choose another one.", nil)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("register hash: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	user, err := h.users.CreateUser(r.Context(), form.Name, form.Email, string(hashed))
	if err != nil {
		log.Printf("register create: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		log.Printf("register session: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/todo", http.StatusFound)
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			log.Printf("logout: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) RetrieveForm(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, r, "retrive.html", nil)
}

// Retrieve resets a forgotten password: a new random password is mailed to
// the user and its hash persisted. Both the found and not-found branches end
// on the login page; mail-delivery failures are logged but not surfaced.
func (h *Handler) Retrieve(w http.ResponseWriter, r *http.Request) {
	form := web.ParseRetrieveForm(r)
	if !form.Valid() {
		h.pages.Render(w, r, "retrive.html", nil)
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), form.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.flash.Set(w, "User with this email doesn't exist, please register first.")
	case err != nil:
		log.Printf("retrieve lookup: %v", err)
	default:
		h.flash.Set(w, "Done! Check your email for new password.")
		h.resetPassword(r.Context(), user)
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handler) resetPassword(ctx context.Context, user *models.User) {
	password, err := GeneratePassword(12)
	if err != nil {
		log.Printf("retrieve generate: %v", err)
		return
	}
	// If the mail never goes out, keep the old password so the user is not
	// locked out by one they never received. The response is the same either
	// way.
	if err := h.mailer.SendNewPassword(user.Email, password); err != nil {
		log.Printf("retrieve mail: %v", err)
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("retrieve hash: %v", err)
		return
	}
	if err := h.users.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		log.Printf("retrieve update: %v", err)
	}
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, userID int64) error {
	sid, err := h.sessions.Create(r.Context(), userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL / time.Second),
	})
	return nil
}
