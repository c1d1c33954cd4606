package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"famnotes/db"
	"famnotes/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFolder(t *testing.T, name string, ownerID uint) models.Folder {
	t.Helper()
	folder := models.Folder{Name: name, OwnerID: ownerID}
	require.NoError(t, db.DB.Create(&folder).Error)
	return folder
}

func TestCreateFolder(t *testing.T) {
	resetTables()
	parent := createTestUser(t, "folder-parent", models.RoleParent, nil)
	child := createTestUser(t, "folder-child", models.RoleChild, &parent.ID)

	t.Run("Child creates a folder", func(t *testing.T) {
		rr := serveAs(&child, jsonRequest(t, "POST", "/folders/", map[string]string{"name": "Homework"}))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		out := decodeBody[models.Folder](t, rr)
		assert.Equal(t, "Homework", out.Name)
		assert.Equal(t, child.ID, out.OwnerID)
	})

	t.Run("Parent is forbidden", func(t *testing.T) {
		rr := serveAs(&parent, jsonRequest(t, "POST", "/folders/", map[string]string{"name": "Spying"}))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Name is required", func(t *testing.T) {
		rr := serveAs(&child, jsonRequest(t, "POST", "/folders/", map[string]string{}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListFolders(t *testing.T) {
	resetTables()
	parent := createTestUser(t, "flist-parent", models.RoleParent, nil)
	child1 := createTestUser(t, "flist-child1", models.RoleChild, &parent.ID)
	child2 := createTestUser(t, "flist-child2", models.RoleChild, &parent.ID)
	stranger := createTestUser(t, "flist-stranger", models.RoleChild, nil)

	f1 := createTestFolder(t, "School", child1.ID)
	f2 := createTestFolder(t, "Chores", child2.ID)
	createTestFolder(t, "Private", stranger.ID)

	t.Run("Child sees only their own folders", func(t *testing.T) {
		rr := serveAs(&child1, jsonRequest(t, "GET", "/folders/", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		out := decodeBody[[]models.Folder](t, rr)
		require.Len(t, out, 1)
		assert.Equal(t, f1.ID, out[0].ID)
	})

	t.Run("Parent sees exactly their children's folders", func(t *testing.T) {
		rr := serveAs(&parent, jsonRequest(t, "GET", "/folders/", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		out := decodeBody[[]models.Folder](t, rr)
		ids := make([]uint, 0, len(out))
		for _, f := range out {
			ids = append(ids, f.ID)
		}
		assert.ElementsMatch(t, []uint{f1.ID, f2.ID}, ids)
	})

	t.Run("Parent with no children sees an empty list", func(t *testing.T) {
		childless := createTestUser(t, "flist-childless", models.RoleParent, nil)
		rr := serveAs(&childless, jsonRequest(t, "GET", "/folders/", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, decodeBody[[]models.Folder](t, rr))
	})
}

func TestUpdateFolder(t *testing.T) {
	resetTables()
	parent := createTestUser(t, "fupd-parent", models.RoleParent, nil)
	child := createTestUser(t, "fupd-child", models.RoleChild, &parent.ID)
	other := createTestUser(t, "fupd-other", models.RoleChild, nil)

	folder := createTestFolder(t, "Old name", child.ID)

	t.Run("Owner renames their folder", func(t *testing.T) {
		rr := serveAs(&child, jsonRequest(t, "PUT", fmt.Sprintf("/folders/%d", folder.ID), map[string]string{"name": "New name"}))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "New name", decodeBody[models.Folder](t, rr).Name)

		var stored models.Folder
		require.NoError(t, db.DB.First(&stored, folder.ID).Error)
		assert.Equal(t, "New name", stored.Name)
	})

	t.Run("Non-owner gets not found", func(t *testing.T) {
		rr := serveAs(&other, jsonRequest(t, "PUT", fmt.Sprintf("/folders/%d", folder.ID), map[string]string{"name": "Hijacked"}))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Missing folder gets not found", func(t *testing.T) {
		rr := serveAs(&child, jsonRequest(t, "PUT", "/folders/999999", map[string]string{"name": "Ghost"}))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Parent is forbidden even for their child's folder", func(t *testing.T) {
		rr := serveAs(&parent, jsonRequest(t, "PUT", fmt.Sprintf("/folders/%d", folder.ID), map[string]string{"name": "Nope"}))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestDeleteFolder(t *testing.T) {
	resetTables()
	child := createTestUser(t, "fdel-child", models.RoleChild, nil)
	other := createTestUser(t, "fdel-other", models.RoleChild, nil)

	folder := createTestFolder(t, "Doomed", child.ID)
	note := models.Note{Title: "Inside", OwnerID: child.ID, FolderID: &folder.ID}
	require.NoError(t, db.DB.Create(&note).Error)

	t.Run("Non-owner gets not found", func(t *testing.T) {
		rr := serveAs(&other, jsonRequest(t, "DELETE", fmt.Sprintf("/folders/%d", folder.ID), nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Owner deletes and contained notes cascade", func(t *testing.T) {
		rr := serveAs(&child, jsonRequest(t, "DELETE", fmt.Sprintf("/folders/%d", folder.ID), nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var folderCount, noteCount int64
		db.DB.Model(&models.Folder{}).Where("id = ?", folder.ID).Count(&folderCount)
		db.DB.Model(&models.Note{}).Where("id = ?", note.ID).Count(&noteCount)
		assert.Zero(t, folderCount)
		assert.Zero(t, noteCount)
	})

	t.Run("Deleting again gets not found", func(t *testing.T) {
		rr := serveAs(&child, jsonRequest(t, "DELETE", fmt.Sprintf("/folders/%d", folder.ID), nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
