package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenCookieName = "__lab_timetable_token"

type authClaims struct {
	jwt.RegisteredClaims
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}{}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.config.Operator.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(h.operatorHash, []byte(req.Password))
	if !usernameOK || passwordErr != nil {
		h.unauthorized(w, "incorrect username or password")
		return
	}

	expiration := time.Duration(h.config.JWT.Expiration) * time.Second
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   req.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	})

	signed, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		h.internalError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   h.config.JWT.Expiration,
		HttpOnly: true,
		Secure:   h.config.Environment == "production",
		SameSite: http.SameSiteStrictMode,
	})

	h.successResponse(w, "logged in", nil)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.Environment == "production",
		SameSite: http.SameSiteStrictMode,
	})

	h.successResponse(w, "logged out", nil)
}
