package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rookgm/lunchorder/internal/models"
	"github.com/rookgm/lunchorder/internal/service"
)

type UserService interface {
	// Register creates new user
	Register(ctx context.Context, user *models.User) (*models.User, error)
	// GetUser returns user by id
	GetUser(ctx context.Context, id uint64) (*models.User, error)
}

type AuthService interface {
	// Login checks credentials and returns authorization token
	Login(ctx context.Context, login, password string) (string, error)
}

// UserHandler represents HTTP handler for user registration
type UserHandler struct {
	us UserService
	ts service.TokenService
}

// NewUserHandler creates new UserHandler instance
func NewUserHandler(us UserService, ts service.TokenService) *UserHandler {
	return &UserHandler{
		us: us,
		ts: ts,
	}
}

type registerRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// RegisterUser registers new user and logs them in
// 200 — пользователь успешно зарегистрирован и аутентифицирован;
// 400 — неверный формат запроса;
// 409 — логин уже занят;
// 500 — внутренняя ошибка сервера.
func (uh *UserHandler) RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, errKindBadRequest, "login and password are required")
			return
		}
		defer r.Body.Close()

		user, err := uh.us.Register(r.Context(), &models.User{
			Login:    req.Login,
			Password: req.Password,
			FullName: req.FullName,
		})
		if err != nil {
			switch {
			case errors.Is(err, models.ErrConflictData):
				writeError(w, http.StatusConflict, errKindConflict, "login is already taken")
			case errors.Is(err, models.ErrInvalidCredentials):
				writeError(w, http.StatusBadRequest, errKindBadRequest, err.Error())
			default:
				writeServiceError(w, err)
			}
			return
		}

		token, err := uh.ts.CreateToken(user)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		setAuthCookie(w, token)
		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}

type profileResponse struct {
	ID       uint64 `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"is_admin"`
}

// GetCurrentUser returns profile of the authenticated user
// 200 — успешная обработка запроса;
// 401 — пользователь не аутентифицирован или удалён;
// 500 — внутренняя ошибка сервера.
func (uh *UserHandler) GetCurrentUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			writeError(w, http.StatusUnauthorized, errKindUnauthorized, "unauthorized")
			return
		}

		user, err := uh.us.GetUser(r.Context(), payload.UserID)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				writeError(w, http.StatusUnauthorized, errKindUnauthorized, "user does not exist")
				return
			}
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, profileResponse{
			ID:       user.ID,
			Login:    user.Login,
			FullName: user.FullName,
			Name:     user.DisplayName(),
			IsAdmin:  user.IsAdmin,
		})
	}
}

// AuthHandler represents HTTP handler for authentication
type AuthHandler struct {
	as AuthService
}

// NewAuthHandler creates new AuthHandler instance
func NewAuthHandler(as AuthService) *AuthHandler {
	return &AuthHandler{as: as}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginUser authenticates user
// 200 — пользователь успешно аутентифицирован;
// 400 — неверный формат запроса;
// 401 — неверная пара логин/пароль;
// 500 — внутренняя ошибка сервера.
func (ah *AuthHandler) LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, errKindBadRequest, "login and password are required")
			return
		}
		defer r.Body.Close()

		token, err := ah.as.Login(r.Context(), req.Login, req.Password)
		if err != nil {
			if errors.Is(err, models.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, errKindInvalidCreds, err.Error())
				return
			}
			writeServiceError(w, err)
			return
		}

		setAuthCookie(w, token)
		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
