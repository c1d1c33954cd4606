package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account kinds. Anything else is rejected at signup.
type Role string

const (
	RoleChild  Role = "child"
	RoleParent Role = "parent"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleChild:
		return RoleChild, nil
	case RoleParent:
		return RoleParent, nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// User is an account. A child may point at its parent via ParentID; the
// hierarchy is one level deep and never mutated after signup.
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"uniqueIndex;not null;size:100" json:"username"`
	Email          string `gorm:"uniqueIndex;not null;size:255" json:"email"`
	HashedPassword string `gorm:"not null" json:"-"`
	Role           Role   `gorm:"not null;size:10" json:"role"`
	ParentID       *uint  `gorm:"index" json:"parent_id"`

	Parent  *User    `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
	Folders []Folder `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Notes   []Note   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

type Folder struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null;size:255" json:"name"`
	OwnerID uint   `gorm:"not null;index" json:"owner_id"`

	Notes []Note `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE" json:"-"`
}

type ChecklistItem struct {
	Task string `json:"task"`
	Done bool   `json:"done"`
}

// ChecklistItems is stored as a JSON text column. A nil slice maps to NULL.
type ChecklistItems []ChecklistItem

func (c ChecklistItems) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *ChecklistItems) Scan(value any) error {
	if value == nil {
		*c = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	}
	return fmt.Errorf("unsupported checklist column type %T", value)
}

// Note holds either free text (Content) or a checklist (ChecklistItems),
// selected by IsChecklist. The two are mutually exclusive.
type Note struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"not null;size:255" json:"title"`
	Content        *string        `json:"content"`
	IsChecklist    bool           `gorm:"not null;default:false" json:"is_checklist"`
	ChecklistItems ChecklistItems `gorm:"type:text" json:"checklist_items"`
	Tags           string         `gorm:"size:1000" json:"-"`
	FolderID       *uint          `gorm:"index" json:"folder_id"`
	OwnerID        uint           `gorm:"not null;index" json:"owner_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TagsToList splits the stored comma-joined tags, trimming whitespace and
// dropping empty entries.
func TagsToList(tags string) []string {
	list := []string{}
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			list = append(list, t)
		}
	}
	return list
}

// ListToTags joins tags into the stored form. A tag containing a comma will
// not survive the round trip; callers accept that limitation.
func ListToTags(list []string) string {
	return strings.Join(list, ",")
}
