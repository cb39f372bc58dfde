package store

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"pathology-case-server/internal/models"
)

// TenantStore owns the tenant roster.
type TenantStore struct {
	tenants *Signal[[]models.Tenant]
}

func NewTenantStore() *TenantStore {
	return &TenantStore{tenants: NewSignal(seedTenants())}
}

func (s *TenantStore) Tenants() []models.Tenant {
	return slices.Clone(s.tenants.Get())
}

// AddTenant creates an active tenant. Blank names are a no-op.
func (s *TenantStore) AddTenant(name string) (models.Tenant, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Tenant{}, false
	}
	t := models.Tenant{ID: uuid.New().String(), Name: name, Status: models.TenantActive}
	s.tenants.Update(func(tenants []models.Tenant) []models.Tenant {
		return append(slices.Clone(tenants), t)
	})
	return t, true
}

func (s *TenantStore) UpdateTenant(updated models.Tenant) {
	s.tenants.Update(func(tenants []models.Tenant) []models.Tenant {
		out := slices.Clone(tenants)
		for i := range out {
			if out[i].ID == updated.ID {
				out[i] = updated
			}
		}
		return out
	})
}

func (s *TenantStore) DeleteTenant(tenantID string) {
	s.tenants.Update(func(tenants []models.Tenant) []models.Tenant {
		return slices.DeleteFunc(slices.Clone(tenants), func(t models.Tenant) bool {
			return t.ID == tenantID
		})
	})
}

// RoleStore owns the role definitions and the fixed permission table.
type RoleStore struct {
	roles *Signal[[]models.Role]
}

func NewRoleStore() *RoleStore {
	return &RoleStore{roles: NewSignal(seedRoles())}
}

func (s *RoleStore) Roles() []models.Role {
	return slices.Clone(s.roles.Get())
}

func (s *RoleStore) Permissions() []models.PermissionDescriptor {
	return slices.Clone(AllPermissions)
}

// RoleByName resolves the role definition for a role name.
func (s *RoleStore) RoleByName(name models.RoleName) (models.Role, bool) {
	for _, r := range s.roles.Get() {
		if r.Name == name {
			return r, true
		}
	}
	return models.Role{}, false
}

func (s *RoleStore) AddRole(role models.Role) models.Role {
	role.ID = uuid.New().String()
	s.roles.Update(func(roles []models.Role) []models.Role {
		return append(slices.Clone(roles), role)
	})
	return role
}

func (s *RoleStore) UpdateRole(updated models.Role) {
	s.roles.Update(func(roles []models.Role) []models.Role {
		out := slices.Clone(roles)
		for i := range out {
			if out[i].ID == updated.ID {
				out[i] = updated
			}
		}
		return out
	})
}

func (s *RoleStore) DeleteRole(roleID string) {
	s.roles.Update(func(roles []models.Role) []models.Role {
		return slices.DeleteFunc(slices.Clone(roles), func(r models.Role) bool {
			return r.ID == roleID
		})
	})
}

// TaskStore owns per-user to-do items.
type TaskStore struct {
	auth  *AuthStore
	tasks *Signal[[]models.Task]
}

func NewTaskStore(auth *AuthStore) *TaskStore {
	return &TaskStore{auth: auth, tasks: NewSignal(seedTasks(time.Now()))}
}

// UserTasks returns the acting user's tasks, newest first.
func (s *TaskStore) UserTasks() []models.Task {
	user := s.auth.CurrentUser()
	if user == nil {
		return []models.Task{}
	}
	out := make([]models.Task, 0)
	for _, t := range s.tasks.Get() {
		if t.UserID == user.ID {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Task) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// AddTask creates a task for the acting user. Blank text or a missing
// acting user is a no-op.
func (s *TaskStore) AddTask(text, caseID string) (models.Task, bool) {
	user := s.auth.CurrentUser()
	text = strings.TrimSpace(text)
	if user == nil || text == "" {
		return models.Task{}, false
	}
	task := models.Task{
		ID:        uuid.New().String(),
		Text:      text,
		CaseID:    caseID,
		UserID:    user.ID,
		CreatedAt: time.Now(),
	}
	s.tasks.Update(func(tasks []models.Task) []models.Task {
		return append([]models.Task{task}, tasks...)
	})
	return task, true
}

func (s *TaskStore) ToggleTask(taskID string) {
	s.tasks.Update(func(tasks []models.Task) []models.Task {
		out := slices.Clone(tasks)
		for i := range out {
			if out[i].ID == taskID {
				out[i].IsCompleted = !out[i].IsCompleted
			}
		}
		return out
	})
}

func (s *TaskStore) DeleteTask(taskID string) {
	s.tasks.Update(func(tasks []models.Task) []models.Task {
		return slices.DeleteFunc(slices.Clone(tasks), func(t models.Task) bool {
			return t.ID == taskID
		})
	})
}

// IntegrationStore owns the external-system connection roster.
type IntegrationStore struct {
	integrations *Signal[[]models.Integration]
}

func NewIntegrationStore() *IntegrationStore {
	return &IntegrationStore{integrations: NewSignal(seedIntegrations())}
}

func (s *IntegrationStore) Integrations() []models.Integration {
	return slices.Clone(s.integrations.Get())
}

// TenantIntegrations narrows the roster to one tenant's connections.
func (s *IntegrationStore) TenantIntegrations(tenantName string) []models.Integration {
	out := make([]models.Integration, 0)
	for _, in := range s.integrations.Get() {
		if in.Tenant == tenantName {
			out = append(out, in)
		}
	}
	return out
}

// ModelStore owns the deployed-model registry.
type ModelStore struct {
	models *Signal[[]models.AiModel]
}

func NewModelStore() *ModelStore {
	return &ModelStore{models: NewSignal(seedModels())}
}

func (s *ModelStore) Models() []models.AiModel {
	return slices.Clone(s.models.Get())
}

// Rollback promotes the target model to production and archives the model
// currently in production. No-op when the target is unknown or already
// live.
func (s *ModelStore) Rollback(modelID string) {
	s.models.Update(func(list []models.AiModel) []models.AiModel {
		var target *models.AiModel
		for i := range list {
			if list[i].ID == modelID {
				target = &list[i]
			}
		}
		if target == nil || target.Status == models.ModelProduction {
			return list
		}

		out := slices.Clone(list)
		for i := range out {
			if out[i].Status == models.ModelProduction {
				out[i].Status = models.ModelArchived
			}
			if out[i].ID == modelID {
				out[i].Status = models.ModelProduction
			}
		}
		return out
	})
}

// CourseStore owns the course catalog.
type CourseStore struct {
	courses *Signal[[]models.Course]
}

func NewCourseStore() *CourseStore {
	return &CourseStore{courses: NewSignal(seedCourses())}
}

func (s *CourseStore) Courses() []models.Course {
	return slices.Clone(s.courses.Get())
}

func (s *CourseStore) AddCourse(title, description string) models.Course {
	course := models.Course{
		ID:               uuid.New().String(),
		Title:            title,
		Description:      description,
		AssignedStudents: []string{},
	}
	s.courses.Update(func(courses []models.Course) []models.Course {
		return append(slices.Clone(courses), course)
	})
	return course
}

// AssignStudent adds a student to a course roster once.
func (s *CourseStore) AssignStudent(courseID, userID string) {
	s.courses.Update(func(courses []models.Course) []models.Course {
		out := slices.Clone(courses)
		for i := range out {
			if out[i].ID != courseID || slices.Contains(out[i].AssignedStudents, userID) {
				continue
			}
			out[i].AssignedStudents = append(slices.Clone(out[i].AssignedStudents), userID)
		}
		return out
	})
}

// ChangelogStore owns the published release notes.
type ChangelogStore struct {
	items *Signal[[]models.ChangelogItem]
}

func NewChangelogStore() *ChangelogStore {
	return &ChangelogStore{items: NewSignal(seedChangelog())}
}

func (s *ChangelogStore) Items() []models.ChangelogItem {
	return slices.Clone(s.items.Get())
}

// MlflowStore owns the tracked experiment roster.
type MlflowStore struct {
	experiments *Signal[[]models.MlflowExperiment]
}

func NewMlflowStore() *MlflowStore {
	return &MlflowStore{experiments: NewSignal(seedExperiments())}
}

func (s *MlflowStore) Experiments() []models.MlflowExperiment {
	return slices.Clone(s.experiments.Get())
}

// ActivityStore owns the recent-activity feed.
type ActivityStore struct {
	activities *Signal[[]models.Activity]
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{activities: NewSignal(seedActivities(time.Now()))}
}

func (s *ActivityStore) Activities() []models.Activity {
	return slices.Clone(s.activities.Get())
}

// Log prepends an entry to the feed.
func (s *ActivityStore) Log(icon models.ActivityIcon, text string) {
	entry := models.Activity{
		ID:        uuid.New().String(),
		Icon:      icon,
		Text:      text,
		Timestamp: time.Now(),
	}
	s.activities.Update(func(list []models.Activity) []models.Activity {
		return append([]models.Activity{entry}, list...)
	})
}

// SettingsPatch carries partial updates to the global settings; nil fields
// are left unchanged.
type SettingsPatch struct {
	EmailOnError *bool `json:"emailOnError"`
	WeeklyReport *bool `json:"weeklyReport"`
	MFAEnforced  *bool `json:"mfaEnforced"`
}

// SettingsStore owns the global system settings.
type SettingsStore struct {
	settings *Signal[models.SystemSettings]
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{settings: NewSignal(seedSettings())}
}

func (s *SettingsStore) Settings() models.SystemSettings {
	return s.settings.Get()
}

func (s *SettingsStore) Update(patch SettingsPatch) models.SystemSettings {
	s.settings.Update(func(cur models.SystemSettings) models.SystemSettings {
		if patch.EmailOnError != nil {
			cur.EmailOnError = *patch.EmailOnError
		}
		if patch.WeeklyReport != nil {
			cur.WeeklyReport = *patch.WeeklyReport
		}
		if patch.MFAEnforced != nil {
			cur.MFAEnforced = *patch.MFAEnforced
		}
		return cur
	})
	return s.settings.Get()
}
