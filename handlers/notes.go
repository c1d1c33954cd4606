package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"famnotes/db"
	"famnotes/middleware"
	"famnotes/models"

	"github.com/go-chi/chi/v5"
)

type notePayload struct {
	Title          string                `json:"title"`
	Content        *string               `json:"content"`
	IsChecklist    bool                  `json:"is_checklist"`
	ChecklistItems models.ChecklistItems `json:"checklist_items"`
	Tags           []string              `json:"tags"`
	FolderID       *uint                 `json:"folder_id"`
}

// apply copies the payload onto the note, enforcing that checklist items and
// free-text content are mutually exclusive.
func (p notePayload) apply(note *models.Note) {
	note.Title = p.Title
	note.IsChecklist = p.IsChecklist
	note.FolderID = p.FolderID
	note.Tags = models.ListToTags(p.Tags)
	if p.IsChecklist {
		note.Content = nil
		note.ChecklistItems = p.ChecklistItems
		if note.ChecklistItems == nil {
			note.ChecklistItems = models.ChecklistItems{}
		}
	} else {
		note.Content = p.Content
		note.ChecklistItems = nil
	}
}

type noteResponse struct {
	ID             uint                  `json:"id"`
	Title          string                `json:"title"`
	Content        *string               `json:"content"`
	IsChecklist    bool                  `json:"is_checklist"`
	ChecklistItems models.ChecklistItems `json:"checklist_items"`
	Tags           []string              `json:"tags"`
	FolderID       *uint                 `json:"folder_id"`
	OwnerID        uint                  `json:"owner_id"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func newNoteResponse(n models.Note) noteResponse {
	return noteResponse{
		ID:             n.ID,
		Title:          n.Title,
		Content:        n.Content,
		IsChecklist:    n.IsChecklist,
		ChecklistItems: n.ChecklistItems,
		Tags:           models.TagsToList(n.Tags),
		FolderID:       n.FolderID,
		OwnerID:        n.OwnerID,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

func CreateNote(w http.ResponseWriter, r *http.Request) {
	user := requireChild(w, r)
	if user == nil {
		return
	}

	var payload notePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	note := models.Note{OwnerID: user.ID}
	payload.apply(&note)
	if err := db.DB.Create(&note).Error; err != nil {
		http.Error(w, "Failed to create note", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, newNoteResponse(note))
}

// ListNotes returns the caller's own notes for children, or the notes of all
// direct children for parents.
func ListNotes(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var notes []models.Note
	switch user.Role {
	case models.RoleChild:
		if err := db.DB.Where("owner_id = ?", user.ID).Find(&notes).Error; err != nil {
			http.Error(w, "Failed to list notes", http.StatusInternalServerError)
			return
		}
	case models.RoleParent:
		ids, err := childIDs(user.ID)
		if err != nil {
			http.Error(w, "Failed to list notes", http.StatusInternalServerError)
			return
		}
		if err := db.DB.Where("owner_id IN ?", ids).Find(&notes).Error; err != nil {
			http.Error(w, "Failed to list notes", http.StatusInternalServerError)
			return
		}
	default:
		http.Error(w, "Unauthorized role", http.StatusForbidden)
		return
	}

	out := []noteResponse{}
	for _, n := range notes {
		out = append(out, newNoteResponse(n))
	}
	respondJSON(w, http.StatusOK, out)
}

func UpdateNote(w http.ResponseWriter, r *http.Request) {
	user := requireChild(w, r)
	if user == nil {
		return
	}

	var payload notePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	var note models.Note
	if err := db.DB.Where("id = ? AND owner_id = ?", chi.URLParam(r, "id"), user.ID).First(&note).Error; err != nil {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}

	payload.apply(&note)
	if err := db.DB.Save(&note).Error; err != nil {
		http.Error(w, "Failed to update note", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, newNoteResponse(note))
}

// UpdateChecklist replaces a checklist note's items wholesale. A note that is
// missing, not owned, or not a checklist all answer 404.
func UpdateChecklist(w http.ResponseWriter, r *http.Request) {
	user := requireChild(w, r)
	if user == nil {
		return
	}

	var items models.ChecklistItems
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if items == nil {
		items = models.ChecklistItems{}
	}

	var note models.Note
	if err := db.DB.Where("id = ? AND owner_id = ?", chi.URLParam(r, "id"), user.ID).First(&note).Error; err != nil {
		http.Error(w, "Checklist note not found", http.StatusNotFound)
		return
	}
	if !note.IsChecklist {
		http.Error(w, "Checklist note not found", http.StatusNotFound)
		return
	}

	note.ChecklistItems = items
	if err := db.DB.Save(&note).Error; err != nil {
		http.Error(w, "Failed to update checklist", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, newNoteResponse(note))
}

func DeleteNote(w http.ResponseWriter, r *http.Request) {
	user := requireChild(w, r)
	if user == nil {
		return
	}

	var note models.Note
	if err := db.DB.Where("id = ? AND owner_id = ?", chi.URLParam(r, "id"), user.ID).First(&note).Error; err != nil {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}

	res := db.DB.Delete(&note)
	if res.Error != nil {
		http.Error(w, "Failed to delete note", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": res.RowsAffected})
}
