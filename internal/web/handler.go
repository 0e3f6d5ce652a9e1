// AngelaMos | 2026
// handler.go

package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/carterperez-dev/journal-backend/internal/auth"
	"github.com/carterperez-dev/journal-backend/internal/core"
	"github.com/carterperez-dev/journal-backend/internal/entry"
	"github.com/carterperez-dev/journal-backend/internal/middleware"
	"github.com/carterperez-dev/journal-backend/internal/policy"
	"github.com/carterperez-dev/journal-backend/internal/user"
)

const (
	titleIndex   = "MyJournal - Data Collection Device"
	titleAbout   = "About MyJournal"
	titleJournal = "My Journal"
	titleAddUser = "Add User"
	titleError   = "Error"

	loginFailedPath = "/?login=failed"
)

type SessionService interface {
	Authenticate(ctx context.Context, email, password string) (*auth.UserInfo, error)
	CreateSession(ctx context.Context, userID uuid.UUID) (string, error)
	DestroySession(ctx context.Context, token string) error
}

type EntryLister interface {
	List(ctx context.Context, subject policy.Subject) ([]entry.Entry, error)
}

type UserCreator interface {
	Create(ctx context.Context, subject policy.Subject, req user.CreateUserRequest) (*user.User, error)
}

type Config struct {
	Sessions SessionService
	Cookie   auth.SessionCookie
	Entries  EntryLister
	Users    UserCreator
}

// Handler serves the server-rendered pages. Identity comes from the
// session scheme only; API credentials are not honoured here.
type Handler struct {
	sessions  SessionService
	cookie    auth.SessionCookie
	entries   EntryLister
	users     UserCreator
	renderer  *renderer
	validator *validator.Validate
}

func NewHandler(cfg Config) (*Handler, error) {
	rd, err := newRenderer()
	if err != nil {
		return nil, err
	}

	return &Handler{
		sessions:  cfg.Sessions,
		cookie:    cfg.Cookie,
		entries:   cfg.Entries,
		users:     cfg.Users,
		renderer:  rd,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// RegisterRoutes mounts the pages. session attaches an optional identity;
// loginGuard wraps POST /login and may be nil.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	session func(http.Handler) http.Handler,
	loginGuard func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(session)

		r.Get("/", h.Index)
		r.Get("/about", h.About)
		r.Get("/logout", h.Logout)
		r.Get("/journal", h.Journal)
		r.Get("/addUser", h.AddUserForm)
		r.Post("/addUser", h.AddUser)

		if loginGuard != nil {
			r.With(loginGuard).Post("/login", h.Login)
		} else {
			r.Post("/login", h.Login)
		}
	})
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	h.renderer.render(w, r, http.StatusOK, pageIndex, pageData{
		Title:       titleIndex,
		User:        identity,
		LoginFailed: r.URL.Query().Get("login") == "failed",
	})
}

func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	h.renderer.render(w, r, http.StatusOK, pageAbout, pageData{
		Title: titleAbout,
		User:  identity,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, loginFailedPath, http.StatusSeeOther)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		http.Redirect(w, r, loginFailedPath, http.StatusSeeOther)
		return
	}

	ctx := r.Context()

	info, err := h.sessions.Authenticate(ctx, username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		core.LoggerFrom(ctx).Info("login failed", "username", username)
		http.Redirect(w, r, loginFailedPath, http.StatusSeeOther)
		return
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if old, ok := h.cookie.Read(r); ok {
		if err := h.sessions.DestroySession(ctx, old); err != nil {
			core.LoggerFrom(ctx).Warn("failed to destroy previous session", "error", err)
		}
	}

	token, err := h.sessions.CreateSession(ctx, info.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	core.AddSpanEvent(ctx, "session.created")
	h.cookie.Set(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := h.cookie.Read(r); ok {
		if err := h.sessions.DestroySession(r.Context(), token); err != nil {
			core.LoggerFrom(r.Context()).Warn("failed to destroy session", "error", err)
		}
	}

	h.cookie.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Journal(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	entries, err := h.entries.List(r.Context(), identity.Subject())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderer.render(w, r, http.StatusOK, pageJournal, pageData{
		Title:   titleJournal,
		User:    identity,
		Entries: entry.ToEntryResponseList(entries),
	})
}

// AddUserForm shows the form to admins. Other signed-in users land on the
// home page; anonymous callers are sent there.
func (h *Handler) AddUserForm(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if !identity.Admin {
		h.Index(w, r)
		return
	}

	h.renderer.render(w, r, http.StatusOK, pageAddUser, pageData{
		Title:   titleAddUser,
		User:    identity,
		Message: addedMessage(r.URL.Query().Get("created")),
	})
}

func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.addUserFailed(w, r, identity, http.StatusBadRequest, "invalid form")
		return
	}

	req := user.CreateUserRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}

	if err := h.validator.Struct(req); err != nil {
		h.addUserFailed(w, r, identity, http.StatusBadRequest, core.FormatValidationError(err))
		return
	}

	created, err := h.users.Create(r.Context(), identity.Subject(), req)
	switch {
	case err == nil:
		http.Redirect(w, r, "/addUser?created="+url.QueryEscape(created.Email), http.StatusSeeOther)
	case errors.Is(err, core.ErrForbidden):
		h.Index(w, r)
	case errors.Is(err, core.ErrDuplicateKey):
		h.addUserFailed(w, r, identity, http.StatusConflict, "username already exists")
	default:
		h.renderError(w, r, err)
	}
}

func (h *Handler) addUserFailed(
	w http.ResponseWriter,
	r *http.Request,
	identity *middleware.Identity,
	status int,
	message string,
) {
	h.renderer.render(w, r, status, pageAddUser, pageData{
		Title: titleAddUser,
		User:  identity,
		Error: message,
	})
}

func addedMessage(email string) string {
	if email == "" {
		return ""
	}
	return "Created user " + email + "."
}

// NotFound answers unknown routes: an HTML page for browsers and the JSON
// envelope for everything else.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if !wantsHTML(r) {
		core.NotFound(w, "route")
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	h.renderer.render(w, r, http.StatusNotFound, pageError, pageData{
		Title:  titleError,
		User:   identity,
		Status: http.StatusNotFound,
		Error:  "Page not found.",
	})
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	core.LoggerFrom(r.Context()).Error("page failed",
		"error", err,
		"path", r.URL.Path,
	)
	core.SetSpanError(r.Context(), err)

	data := pageData{
		Title:  titleError,
		Status: http.StatusInternalServerError,
		Error:  "Something went wrong.",
	}
	data.User, _ = middleware.GetIdentity(r.Context())
	if core.ErrorDetailExposed(r.Context()) {
		data.Detail = err.Error()
	}

	h.renderer.render(w, r, http.StatusInternalServerError, pageError, data)
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
