package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"tiketbus/internal/domain"
	"tiketbus/internal/http/middleware"
	"tiketbus/internal/repositories"
	"tiketbus/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var input registerInput
	if !bindJSON(c, &input) {
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nama dan email wajib diisi"})
		return
	}
	if !strings.Contains(input.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format email tidak valid"})
		return
	}
	if len(input.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password minimal 8 karakter"})
		return
	}

	repo := repositories.UserRepository{}
	n, err := repo.CountByEmail(input.Email)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "cek email gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mendaftarkan user"})
		return
	}
	if n > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "email sudah terdaftar"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mendaftarkan user"})
		return
	}

	id, err := repo.Create(input.Name, input.Email, input.Phone, string(hash), domain.RoleUser)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "insert gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mendaftarkan user"})
		return
	}

	token, err := middleware.IssueToken(id, domain.RoleUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":    id,
			"name":  input.Name,
			"email": input.Email,
			"role":  domain.RoleUser,
		},
	})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var input loginInput
	if !bindJSON(c, &input) {
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email dan password wajib diisi"})
		return
	}

	repo := repositories.UserRepository{}
	user, hash, err := repo.GetByEmail(input.Email)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "email atau password salah"})
		return
	}
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "query gagal: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal login"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "email atau password salah"})
		return
	}

	token, err := middleware.IssueToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	repo := repositories.UserRepository{}
	user, err := repo.GetByID(userID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user tidak ditemukan"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data user"})
		return
	}
	c.JSON(http.StatusOK, user)
}
