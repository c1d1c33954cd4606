package handlers

import (
	"encoding/json"
	"net/http"

	"famnotes/db"
	"famnotes/middleware"
	"famnotes/models"

	"github.com/go-chi/chi/v5"
)

type folderRequest struct {
	Name string `json:"name"`
}

func CreateFolder(w http.ResponseWriter, r *http.Request) {
	user := requireChild(w, r)
	if user == nil {
		return
	}

	var req folderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	folder := models.Folder{Name: req.Name, OwnerID: user.ID}
	if err := db.DB.Create(&folder).Error; err != nil {
		http.Error(w, "Failed to create folder", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, folder)
}

// ListFolders returns the caller's own folders for children, or the folders
// of all direct children for parents.
func ListFolders(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	folders := []models.Folder{}
	switch user.Role {
	case models.RoleChild:
		if err := db.DB.Where("owner_id = ?", user.ID).Find(&folders).Error; err != nil {
			http.Error(w, "Failed to list folders", http.StatusInternalServerError)
			return
		}
	case models.RoleParent:
		ids, err := childIDs(user.ID)
		if err != nil {
			http.Error(w, "Failed to list folders", http.StatusInternalServerError)
			return
		}
		if err := db.DB.Where("owner_id IN ?", ids).Find(&folders).Error; err != nil {
			http.Error(w, "Failed to list folders", http.StatusInternalServerError)
			return
		}
	default:
		http.Error(w, "Unauthorized role", http.StatusForbidden)
		return
	}
	respondJSON(w, http.StatusOK, folders)
}

func UpdateFolder(w http.ResponseWriter, r *http.Request) {
	user := requireChild(w, r)
	if user == nil {
		return
	}

	var req folderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	// Not-found and not-owned collapse into one answer on purpose.
	var folder models.Folder
	if err := db.DB.Where("id = ? AND owner_id = ?", chi.URLParam(r, "id"), user.ID).First(&folder).Error; err != nil {
		http.Error(w, "Folder not found", http.StatusNotFound)
		return
	}

	folder.Name = req.Name
	if err := db.DB.Save(&folder).Error; err != nil {
		http.Error(w, "Failed to update folder", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, folder)
}

func DeleteFolder(w http.ResponseWriter, r *http.Request) {
	user := requireChild(w, r)
	if user == nil {
		return
	}

	var folder models.Folder
	if err := db.DB.Where("id = ? AND owner_id = ?", chi.URLParam(r, "id"), user.ID).First(&folder).Error; err != nil {
		http.Error(w, "Folder not found", http.StatusNotFound)
		return
	}

	// Contained notes go with the folder via the FK cascade.
	res := db.DB.Delete(&folder)
	if res.Error != nil {
		http.Error(w, "Failed to delete folder", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": res.RowsAffected})
}
