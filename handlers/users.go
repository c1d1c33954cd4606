package handlers

import (
	"net/http"

	"famnotes/db"
	"famnotes/middleware"
	"famnotes/models"
)

// Me returns the authenticated user's own record.
func Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ListUsers returns the caller alone for children, or the caller plus their
// direct children for parents.
func ListUsers(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch user.Role {
	case models.RoleChild:
		respondJSON(w, http.StatusOK, []models.User{*user})
	case models.RoleParent:
		var children []models.User
		if err := db.DB.Where("parent_id = ?", user.ID).Find(&children).Error; err != nil {
			http.Error(w, "Failed to list users", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, append([]models.User{*user}, children...))
	default:
		http.Error(w, "Unauthorized role", http.StatusForbidden)
	}
}
