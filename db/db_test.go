package db

import (
	"os"
	"testing"

	"famnotes/config"
	"famnotes/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("DB_DRIVER", "sqlite")
	os.Setenv("DB_URL", "file::memory:?cache=shared")
	cfg := config.Load()

	if err := Connect(cfg); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestCascadingDeletes(t *testing.T) {
	t.Run("Deleting a user removes their folders and notes", func(t *testing.T) {
		user := models.User{Username: "cascade-user", Email: "cascade-user@example.com", HashedPassword: "x", Role: models.RoleChild}
		require.NoError(t, DB.Create(&user).Error)

		folder := models.Folder{Name: "f", OwnerID: user.ID}
		require.NoError(t, DB.Create(&folder).Error)

		loose := models.Note{Title: "loose", OwnerID: user.ID}
		filed := models.Note{Title: "filed", OwnerID: user.ID, FolderID: &folder.ID}
		require.NoError(t, DB.Create(&loose).Error)
		require.NoError(t, DB.Create(&filed).Error)

		require.NoError(t, DB.Delete(&user).Error)

		var folders, notes int64
		DB.Model(&models.Folder{}).Where("owner_id = ?", user.ID).Count(&folders)
		DB.Model(&models.Note{}).Where("owner_id = ?", user.ID).Count(&notes)
		assert.Zero(t, folders)
		assert.Zero(t, notes)
	})

	t.Run("Deleting a folder removes contained notes only", func(t *testing.T) {
		user := models.User{Username: "cascade-user2", Email: "cascade-user2@example.com", HashedPassword: "x", Role: models.RoleChild}
		require.NoError(t, DB.Create(&user).Error)

		folder := models.Folder{Name: "f2", OwnerID: user.ID}
		require.NoError(t, DB.Create(&folder).Error)

		inside := models.Note{Title: "inside", OwnerID: user.ID, FolderID: &folder.ID}
		outside := models.Note{Title: "outside", OwnerID: user.ID}
		require.NoError(t, DB.Create(&inside).Error)
		require.NoError(t, DB.Create(&outside).Error)

		require.NoError(t, DB.Delete(&folder).Error)

		var count int64
		DB.Model(&models.Note{}).Where("id = ?", inside.ID).Count(&count)
		assert.Zero(t, count)
		DB.Model(&models.Note{}).Where("id = ?", outside.ID).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("Deleting a parent detaches children instead of deleting them", func(t *testing.T) {
		parent := models.User{Username: "cascade-parent", Email: "cascade-parent@example.com", HashedPassword: "x", Role: models.RoleParent}
		require.NoError(t, DB.Create(&parent).Error)

		child := models.User{Username: "cascade-child", Email: "cascade-child@example.com", HashedPassword: "x", Role: models.RoleChild, ParentID: &parent.ID}
		require.NoError(t, DB.Create(&child).Error)

		require.NoError(t, DB.Delete(&parent).Error)

		var stored models.User
		require.NoError(t, DB.First(&stored, child.ID).Error)
		assert.Nil(t, stored.ParentID)
	})
}
