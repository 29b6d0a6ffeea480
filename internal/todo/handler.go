package todo

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nvast/TODO-list/internal/middleware"
	"github.com/nvast/TODO-list/internal/models"
	"github.com/nvast/TODO-list/internal/web"
)

// TodoStore defines the interface for to-do persistence.
type TodoStore interface {
	CreateTodo(ctx context.Context, item *models.TodoItem) (*models.TodoItem, error)
	ListTodosByUser(ctx context.Context, userID int64) ([]models.TodoItem, error)
	DeleteTodo(ctx context.Context, id int64) error
}

// Handler holds the to-do list HTTP handlers.
type Handler struct {
	todos TodoStore
	pages *web.Renderer
}

func NewHandler(todos TodoStore, pages *web.Renderer) *Handler {
	return &Handler{todos: todos, pages: pages}
}

// List renders the current user's to-do items.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	items, err := h.todos.ListTodosByUser(r.Context(), userID)
	if err != nil {
		log.Printf("todo list: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	h.pages.Render(w, r, "todo.html", items)
}

// Create inserts a new item for the current user and reloads the list. The
// four text fields are taken as-is, empty included.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	item := &models.TodoItem{
		Time:     r.PostFormValue("time"),
		Priority: r.PostFormValue("priority"),
		Task:     r.PostFormValue("task"),
		Location: r.PostFormValue("location"),
		UserID:   userID,
	}
	if _, err := h.todos.CreateTodo(r.Context(), item); err != nil {
		log.Printf("todo create: %v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/todo", http.StatusFound)
}

// Delete removes an item by id and redirects back to the list. An unknown or
// malformed id is a no-op; the redirect happens either way.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64); err == nil {
		if err := h.todos.DeleteTodo(r.Context(), id); err != nil {
			log.Printf("todo delete %d: %v", id, err)
		}
	}
	http.Redirect(w, r, "/todo", http.StatusFound)
}
