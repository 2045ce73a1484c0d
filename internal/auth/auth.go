package auth

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/inkvoice/inkvoice/internal/models"
	"github.com/inkvoice/inkvoice/internal/services"
)

const sessionName = "inkvoice-session"

var (
	store       *sessions.CookieStore
	userService *services.UserService
)

// Init wires the session store and user service. Must run before any
// handler is mounted.
func Init(secret string, users *services.UserService) {
	store = sessions.NewCookieStore([]byte(secret))
	userService = users
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}
	if req.DisplayName == "" {
		req.DisplayName = req.Username
	}

	user, err := userService.CreateUser(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	setSessionUser(w, r, user.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := userService.AuthenticateUser(&req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	setSessionUser(w, r, user.ID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := store.Get(r, sessionName)
	session.Values["user_id"] = 0
	session.Options.MaxAge = -1
	session.Save(r, w)
	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware rejects requests without an authenticated session before
// any handler logic runs.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserIDFromSession(r) == 0 {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserIDFromSession returns the logged-in user id, or zero.
func GetUserIDFromSession(r *http.Request) int {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return 0
	}
	id, _ := session.Values["user_id"].(int)
	return id
}

func setSessionUser(w http.ResponseWriter, r *http.Request, userID int) {
	session, _ := store.Get(r, sessionName)
	session.Values["user_id"] = userID
	session.Save(r, w)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
