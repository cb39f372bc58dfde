package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pathology-case-server/internal/models"
)

func TestTenantLifecycle(t *testing.T) {
	s := NewTenantStore()

	tenant, ok := s.AddTenant("  Lakeside Labs  ")
	require.True(t, ok)
	assert.Equal(t, "Lakeside Labs", tenant.Name)
	assert.Equal(t, models.TenantActive, tenant.Status)

	_, ok = s.AddTenant("   ")
	assert.False(t, ok)

	tenant.Status = models.TenantSuspended
	s.UpdateTenant(tenant)
	found := false
	for _, cur := range s.Tenants() {
		if cur.ID == tenant.ID {
			found = true
			assert.Equal(t, models.TenantSuspended, cur.Status)
		}
	}
	assert.True(t, found)

	s.DeleteTenant(tenant.ID)
	for _, cur := range s.Tenants() {
		assert.NotEqual(t, tenant.ID, cur.ID)
	}
}

func TestRoleStoreLookupAndMutation(t *testing.T) {
	s := NewRoleStore()

	role, ok := s.RoleByName(models.RolePathologist)
	require.True(t, ok)
	assert.True(t, role.HasPermission(models.PermRunAIAnalysis))
	assert.False(t, role.HasPermission(models.PermManageUsers))

	_, ok = s.RoleByName("Nobody")
	assert.False(t, ok)

	created := s.AddRole(models.Role{
		Name:        "Auditor",
		Description: "Read-only access to reports.",
		Permissions: []models.Permission{models.PermViewReports},
	})
	assert.NotEmpty(t, created.ID)

	created.Permissions = append(created.Permissions, models.PermViewCases)
	s.UpdateRole(created)
	updated, ok := s.RoleByName("Auditor")
	require.True(t, ok)
	assert.True(t, updated.HasPermission(models.PermViewCases))

	s.DeleteRole(created.ID)
	_, ok = s.RoleByName("Auditor")
	assert.False(t, ok)
}

func TestTasksScopedToActingUser(t *testing.T) {
	auth := NewAuthStore(zap.NewNop(), "")
	s := NewTaskStore(auth)

	// u1 owns three seeded tasks.
	assert.Len(t, s.UserTasks(), 3)

	task, ok := s.AddTask("Check stain quality on S24-1002", "c2")
	require.True(t, ok)
	assert.Equal(t, "u1", task.UserID)

	tasks := s.UserTasks()
	require.Len(t, tasks, 4)
	assert.Equal(t, task.ID, tasks[0].ID, "new tasks come first")

	s.ToggleTask(task.ID)
	for _, cur := range s.UserTasks() {
		if cur.ID == task.ID {
			assert.True(t, cur.IsCompleted)
		}
	}

	s.DeleteTask(task.ID)
	assert.Len(t, s.UserTasks(), 3)

	_, err := auth.Login("u2", "")
	require.NoError(t, err)
	assert.Len(t, s.UserTasks(), 2)
}

func TestModelRollbackSwapsProduction(t *testing.T) {
	s := NewModelStore()

	s.Rollback("m2")
	for _, m := range s.Models() {
		switch m.ID {
		case "m1":
			assert.Equal(t, models.ModelArchived, m.Status)
		case "m2":
			assert.Equal(t, models.ModelProduction, m.Status)
		}
	}

	// Promoting the production model again changes nothing.
	before := s.Models()
	s.Rollback("m2")
	assert.Equal(t, before, s.Models())

	// Unknown ids are ignored.
	s.Rollback("nope")
	assert.Equal(t, before, s.Models())
}

func TestAssignStudentIsIdempotent(t *testing.T) {
	s := NewCourseStore()

	s.AssignStudent("course2", "u8")
	s.AssignStudent("course2", "u8")

	for _, course := range s.Courses() {
		if course.ID == "course2" {
			assert.Equal(t, []string{"u8"}, course.AssignedStudents)
		}
	}
}

func TestSettingsPatchKeepsAbsentFields(t *testing.T) {
	s := NewSettingsStore()

	mfa := true
	updated := s.Update(SettingsPatch{MFAEnforced: &mfa})
	assert.True(t, updated.MFAEnforced)
	assert.True(t, updated.EmailOnError, "absent fields keep their values")
	assert.False(t, updated.WeeklyReport)
}

func TestActivityLogPrepends(t *testing.T) {
	s := NewActivityStore()

	s.Log(models.ActivityUserAdded, "User 'Test' was added")
	activities := s.Activities()
	require.NotEmpty(t, activities)
	assert.Equal(t, "User 'Test' was added", activities[0].Text)
	assert.Equal(t, models.ActivityUserAdded, activities[0].Icon)
}

func TestErrorLogAssignsReferenceIDs(t *testing.T) {
	s := NewErrorLogStore(zap.NewNop())

	ref := s.LogError(errors.New("model timed out"), "slide analysis")
	assert.NotEmpty(t, ref)

	logged := s.Errors()
	require.Len(t, logged, 1)
	assert.Equal(t, ref, logged[0].ID)
	assert.Equal(t, "model timed out", logged[0].Message)
	assert.Equal(t, "slide analysis", logged[0].Context)
}
