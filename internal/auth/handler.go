package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ponloe/skymesh-core/internal/response"
	"github.com/Ponloe/skymesh-core/internal/users"
)

type credentialsDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type Handler struct {
	users  *users.Repository
	issuer *Issuer
}

func NewHandler(repo *users.Repository, issuer *Issuer) *Handler {
	return &Handler{users: repo, issuer: issuer}
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// Login verifies credentials and issues a bearer token. Unknown username and
// wrong password yield the same message so the response does not leak which
// of the two failed.
func (h *Handler) Login(c *gin.Context) {
	var dto credentialsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
		return
	}

	u, err := h.users.FindByUsername(dto.Username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, response.Fail("Invalid username or password."))
			return
		}
		log.Printf("login: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Internal server error."))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, response.Fail("Invalid username or password."))
		return
	}

	tok, err := h.issuer.GenerateToken(u)
	if err != nil {
		log.Printf("generate token: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Failed to generate token."))
		return
	}

	c.JSON(http.StatusOK, response.OK("Login successful.", gin.H{"token": tok}))
}

// Register creates a user with the default role. It does not auto-login; the
// response carries no token.
func (h *Handler) Register(c *gin.Context) {
	var dto credentialsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
		return
	}

	exists, err := h.users.ExistsByUsername(dto.Username)
	if err != nil {
		log.Printf("register: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Internal server error."))
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, response.Fail("Username already exists."))
		return
	}

	hashed, err := HashPassword(dto.Password)
	if err != nil {
		log.Printf("hash password: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Failed to hash password."))
		return
	}

	u := users.User{
		Username:     dto.Username,
		PasswordHash: hashed,
		Role:         users.DefaultRole,
	}
	if err := h.users.Create(&u); err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, response.Fail("Username already exists."))
			return
		}
		log.Printf("register: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Internal server error."))
		return
	}

	c.JSON(http.StatusOK, response.OK("User registered successfully.", nil))
}

// Me returns the authenticated user's own record.
func (h *Handler) Me(c *gin.Context) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Fail("Unauthenticated."))
		return
	}

	u, err := h.users.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Fail("User not found."))
			return
		}
		log.Printf("me: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Internal server error."))
		return
	}

	c.JSON(http.StatusOK, u)
}
