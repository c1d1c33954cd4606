package handlers

import (
	"encoding/json"
	"net/http"

	"famnotes/auth"
	"famnotes/config"
	"famnotes/db"
	"famnotes/models"

	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ParentID *uint  `json:"parent_id"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup registers a new account. The role must be one of the two known
// values, and a supplied parent_id must reference an existing parent account.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	if req.Role == "" {
		req.Role = string(models.RoleChild)
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		http.Error(w, "Role must be child or parent", http.StatusBadRequest)
		return
	}

	if req.ParentID != nil {
		if role == models.RoleParent {
			http.Error(w, "A parent account cannot have a parent", http.StatusBadRequest)
			return
		}
		var parent models.User
		if err := db.DB.First(&parent, *req.ParentID).Error; err != nil || parent.Role != models.RoleParent {
			http.Error(w, "parent_id must reference a parent account", http.StatusBadRequest)
			return
		}
	}

	var count int64
	db.DB.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count)
	if count > 0 {
		http.Error(w, "Username or email already registered", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: string(hash),
		Role:           role,
		ParentID:       req.ParentID,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		// Unique index race between the count above and the insert.
		http.Error(w, "Username or email already registered", http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login accepts a username or email plus password and returns a bearer token.
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	var user models.User
	err := db.DB.Where("username = ? OR email = ?", req.Username, req.Username).First(&user).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.CreateToken(&user, config.C.AccessTokenTTL)
	if err != nil {
		http.Error(w, "Token generation failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}
