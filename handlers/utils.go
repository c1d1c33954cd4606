package handlers

import (
	"encoding/json"
	"net/http"

	"famnotes/db"
	"famnotes/middleware"
	"famnotes/models"

	"github.com/rs/zerolog/log"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// requireChild writes a 401/403 and returns nil unless the caller is an
// authenticated child account. Only children may mutate folders and notes.
func requireChild(w http.ResponseWriter, r *http.Request) *models.User {
	user := middleware.UserFrom(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}
	if user.Role != models.RoleChild {
		http.Error(w, "Only child accounts can modify content", http.StatusForbidden)
		return nil
	}
	return user
}

// childIDs returns the ids of the parent's direct children.
func childIDs(parentID uint) ([]uint, error) {
	var ids []uint
	err := db.DB.Model(&models.User{}).Where("parent_id = ?", parentID).Pluck("id", &ids).Error
	return ids, err
}
