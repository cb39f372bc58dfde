package store

import (
	"time"

	"pathology-case-server/internal/models"
)

// Seed data for the in-memory collections. The process starts from these
// fixtures; there is no persistence layer behind them.

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func daysAgo(now time.Time, d int) time.Time {
	return now.Add(-time.Duration(d) * 24 * time.Hour)
}

func seedUsers() []models.User {
	return []models.User{
		{ID: "u1", Name: "Dr. Evelyn Reed", Role: models.RolePathologist, TenantID: strPtr("t1"), FeedbackPoints: 125},
		{ID: "u2", Name: "Dr. Ben Carter", Role: models.RoleResearcher, TenantID: strPtr("t1"), FeedbackPoints: 80},
		{ID: "u3", Name: "Dr. Olivia Chen", Role: models.RolePathologist, TenantID: strPtr("t2"), FeedbackPoints: 45},
		{ID: "u4", Name: "Admin", Role: models.RoleSuperAdmin, FeedbackPoints: 15},
		{ID: "u5", Name: "SysAdmin", Role: models.RoleSystemAdmin, FeedbackPoints: 5},
		{ID: "u6", Name: "Admin (Tenant 1)", Role: models.RoleTenantAdmin, TenantID: strPtr("t1"), FeedbackPoints: 30},
		{ID: "u7", Name: "Researcher Joe", Role: models.RoleResearcher, FeedbackPoints: 95},
		{ID: "u8", Name: "Student", Role: models.RoleStudent, TenantID: strPtr("t1"), FeedbackPoints: 60},
		{ID: "u9", Name: "Demo User", Role: models.RoleDemo, FeedbackPoints: 0},
		{ID: "u10", Name: "Prof. Alan Grant", Role: models.RoleStudentAdmin, TenantID: strPtr("t1"), FeedbackPoints: 40},
		{ID: "u11", Name: "Dr. Kenji Tanaka", Role: models.RolePathologist, TenantID: strPtr("t1"), FeedbackPoints: 110},
	}
}

func seedPatients() []models.Patient {
	return []models.Patient{
		{ID: "p1", Name: "John Doe", DOB: "1985-05-20", Gender: models.GenderMale, MRN: "MRN001"},
		{ID: "p2", Name: "Jane Smith", DOB: "1992-08-15", Gender: models.GenderFemale, MRN: "MRN002"},
		{ID: "p3", Name: "Robert Johnson", DOB: "1978-11-30", Gender: models.GenderMale, MRN: "MRN003"},
		{ID: "p4", Name: "Emily White", DOB: "2001-02-10", Gender: models.GenderFemale, MRN: "MRN004"},
		{ID: "p5", Name: "Michael Brown", DOB: "1964-03-12", Gender: models.GenderMale, MRN: "MRN005"},
		{ID: "p6", Name: "Sarah Davis", DOB: "1998-07-22", Gender: models.GenderFemale, MRN: "MRN006"},
	}
}

func seedCases(now time.Time, users []models.User) []models.Case {
	patients := seedPatients()
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	assignee := func(id string) *models.User {
		if u, ok := byID[id]; ok {
			c := *u
			return &c
		}
		return nil
	}

	return []models.Case{
		{
			ID:                   "c1",
			AccessionNumber:      "S24-1001",
			Patient:              patients[0],
			PatientID:            "p1",
			DateReceived:         daysAgo(now, 5),
			ClinicalHistory:      "Routine checkup, suspicious mole on back.",
			Status:               models.StatusReported,
			Priority:             models.PriorityRoutine,
			AssignedTo:           assignee("u1"),
			SlideImageURL:        "https://picsum.photos/seed/c1/800/600",
			AnalysisHistory:      []models.AnalysisHistoryItem{},
			Annotations:          models.AnnotationList{},
			TenantID:             strPtr("t1"),
			AIDiagnosis:          "Benign Nevus",
			AIConfidence:         0.98,
			PathologistDiagnosis: "Benign Nevus",
		},
		{
			ID:              "c2",
			AccessionNumber: "S24-1002",
			Patient:         patients[1],
			PatientID:       "p2",
			DateReceived:    daysAgo(now, 2),
			ClinicalHistory: "Biopsy of skin lesion on left arm.",
			Status:          models.StatusAwaitingReview,
			Priority:        models.PriorityStat,
			AssignedTo:      assignee("u1"),
			SlideImageURL:   "https://picsum.photos/seed/c2/800/600",
			AnalysisHistory: []models.AnalysisHistoryItem{},
			Annotations:     models.AnnotationList{},
			TenantID:        strPtr("t1"),
		},
		{
			ID:                   "c3",
			AccessionNumber:      "S24-1003",
			Patient:              patients[2],
			PatientID:            "p3",
			DateReceived:         daysAgo(now, 10),
			ClinicalHistory:      "Colon polyp removal.",
			Status:               models.StatusClosed,
			Priority:             models.PriorityRoutine,
			AssignedTo:           assignee("u3"),
			SlideImageURL:        "https://picsum.photos/seed/c3/800/600",
			AnalysisHistory:      []models.AnalysisHistoryItem{},
			Annotations:          models.AnnotationList{},
			IsArchived:           true,
			TenantID:             strPtr("t2"),
			AIDiagnosis:          "Tubular Adenoma",
			AIConfidence:         0.85,
			PathologistDiagnosis: "Villous Adenoma",
		},
		{
			ID:              "c4",
			AccessionNumber: "S24-1004",
			Patient:         patients[3],
			PatientID:       "p4",
			DateReceived:    daysAgo(now, 1),
			ClinicalHistory: "Endometrial biopsy for abnormal bleeding.",
			Status:          models.StatusInReview,
			Priority:        models.PriorityRoutine,
			SlideImageURL:   "https://picsum.photos/seed/c4/800/600",
			AnalysisHistory: []models.AnalysisHistoryItem{},
			Annotations:     models.AnnotationList{},
			TenantID:        strPtr("t1"),
		},
		{
			ID:              "c5",
			AccessionNumber: "S24-1005",
			Patient:         patients[4],
			PatientID:       "p5",
			DateReceived:    now,
			ClinicalHistory: "Urgent frozen section for lung mass.",
			Status:          models.StatusSpecimenAccessioned,
			Priority:        models.PriorityStat,
			AnalysisHistory: []models.AnalysisHistoryItem{},
			Annotations:     models.AnnotationList{},
			TenantID:        strPtr("t2"),
		},
		{
			ID:              "c6",
			AccessionNumber: "T24-001",
			Patient:         patients[5],
			PatientID:       "p6",
			DateReceived:    daysAgo(now, 3),
			ClinicalHistory: "Training case: Classic example of HSIL.",
			Status:          models.StatusAwaitingReview,
			Priority:        models.PriorityRoutine,
			AssignedTo:      assignee("u8"),
			SlideImageURL:   "https://picsum.photos/seed/c6/800/600",
			AnalysisHistory: []models.AnalysisHistoryItem{},
			Annotations:     models.AnnotationList{},
			TenantID:        strPtr("t1"),
			IsTrainingCase:  true,
		},
	}
}

func seedTenants() []models.Tenant {
	return []models.Tenant{
		{ID: "t1", Name: "General Hospital", Status: models.TenantActive},
		{ID: "t2", Name: "City Clinic", Status: models.TenantActive},
		{ID: "t3", Name: "University Medical Center", Status: models.TenantSuspended},
	}
}

// AllPermissions is the fixed permission descriptor table shown on the role
// management screens.
var AllPermissions = []models.PermissionDescriptor{
	{ID: models.PermViewCases, Description: "Can view pathology cases within their scope."},
	{ID: models.PermManageCases, Description: "Can create, edit, assign, and archive cases."},
	{ID: models.PermViewUsers, Description: "Can view users within their scope (e.g., own tenant)."},
	{ID: models.PermManageUsers, Description: "Can add, edit, and remove users within their scope."},
	{ID: models.PermViewRoles, Description: "Can view user roles and their assigned permissions."},
	{ID: models.PermManageRoles, Description: "Can create, edit, and delete user roles."},
	{ID: models.PermViewSystemHealth, Description: "Can monitor system status and view error logs."},
	{ID: models.PermViewReports, Description: "Can access and view system-wide research reports."},
	{ID: models.PermRunAIAnalysis, Description: "Can perform AI-powered analysis on case slides."},
}

func seedRoles() []models.Role {
	all := make([]models.Permission, len(AllPermissions))
	for i, p := range AllPermissions {
		all[i] = p.ID
	}
	return []models.Role{
		{ID: "role-superadmin", Name: models.RoleSuperAdmin, Description: "Has all permissions across the entire system.", Permissions: all},
		{ID: "role-sysadmin", Name: models.RoleSystemAdmin, Description: "Manages system health and configuration.", Permissions: []models.Permission{models.PermViewSystemHealth}},
		{ID: "role-pathologist", Name: models.RolePathologist, Description: "Manages and reviews pathology cases.", Permissions: []models.Permission{models.PermViewCases, models.PermManageCases, models.PermRunAIAnalysis}},
		{ID: "role-tenantadmin", Name: models.RoleTenantAdmin, Description: "Manages users and cases within their own tenant.", Permissions: []models.Permission{models.PermViewCases, models.PermManageCases, models.PermViewUsers, models.PermManageUsers, models.PermViewRoles, models.PermManageRoles}},
		{ID: "role-studentadmin", Name: models.RoleStudentAdmin, Description: "Manages students and educational content.", Permissions: []models.Permission{models.PermViewCases, models.PermManageCases, models.PermViewUsers, models.PermManageUsers}},
		{ID: "role-researcher", Name: models.RoleResearcher, Description: "Can view anonymized case data for research.", Permissions: []models.Permission{models.PermViewCases, models.PermViewReports}},
		{ID: "role-student", Name: models.RoleStudent, Description: "Has limited access to assigned training cases.", Permissions: []models.Permission{models.PermViewCases}},
		{ID: "role-demo", Name: models.RoleDemo, Description: "Has read-only access for demonstration purposes.", Permissions: []models.Permission{}},
	}
}

func seedFeedback(now time.Time) []models.Feedback {
	return []models.Feedback{
		{
			ID: "fb1", Type: models.FeedbackBug, Title: "Annotation tool freezes",
			Description: "The annotation tool sometimes freezes when drawing a freehand shape on very large slide images. I have to refresh the page to get it working again.",
			Status:      models.FeedbackInProgress, SubmittedBy: "u1", SubmittedByName: "Dr. Evelyn Reed",
			SubmittedAt: daysAgo(now, 2), PointsAwarded: 5, Priority: models.FeedbackPriorityHigh,
			Attachment: &models.FeedbackAttachment{Name: "screenshot-freeze.png", Type: "image/png", Size: 120345},
		},
		{
			ID: "fb2", Type: models.FeedbackSuggestion, Title: "Keyboard shortcuts for annotation",
			Description: "It would be great if we could have keyboard shortcuts for switching between annotation tools (e.g., 'R' for rectangle, 'P' for polygon). It would speed up my workflow significantly.",
			Status:      models.FeedbackResolved, SubmittedBy: "u11", SubmittedByName: "Dr. Kenji Tanaka",
			SubmittedAt: daysAgo(now, 5), PointsAwarded: 25,
		},
		{
			ID: "fb3", Type: models.FeedbackSuggestion, Title: "Export to Jupyter notebook",
			Description: "The natural language query for cohort building is fantastic, but it would be helpful if it supported exporting the results directly to a Jupyter notebook format.",
			Status:      models.FeedbackResolved, SubmittedBy: "u2", SubmittedByName: "Dr. Ben Carter",
			SubmittedAt: daysAgo(now, 10), PointsAwarded: 25,
		},
		{
			ID: "fb4", Type: models.FeedbackSuggestion, Title: "New UI update looks great!",
			Description: "The new UI update looks great! Much cleaner and more intuitive.",
			Status:      models.FeedbackNew, SubmittedBy: "u1", SubmittedByName: "Dr. Evelyn Reed",
			SubmittedAt: daysAgo(now, 1), PointsAwarded: 5,
		},
		{
			ID: "fb5", Type: models.FeedbackError, Title: "AI misclassified a clear case of LSIL as HSIL.",
			Description: "The AI misclassified a clear case of LSIL as HSIL. Confidence was high (92%) which is concerning. See CASE-004 for details.",
			Status:      models.FeedbackInProgress, SubmittedBy: "u3", SubmittedByName: "Dr. Sofia Rossi",
			SubmittedAt: daysAgo(now, 4), PointsAwarded: 5, Priority: models.FeedbackPriorityCritical,
		},
	}
}

func seedTasks(now time.Time) []models.Task {
	return []models.Task{
		{ID: "task1", Text: "Review slides for S24-1002", CaseID: "c2", UserID: "u1", CreatedAt: now},
		{ID: "task2", Text: "Draft report for S24-1001", CaseID: "c1", UserID: "u1", CreatedAt: now},
		{ID: "task3", Text: "Follow up with Dr. Smith on case consult", IsCompleted: true, UserID: "u1", CreatedAt: now},
		{ID: "task4", Text: "Prepare for tumor board meeting", UserID: "u2", CreatedAt: now},
		{ID: "task5", Text: "Finalize report for S24-1004", IsCompleted: true, CaseID: "c4", UserID: "u2", CreatedAt: now},
	}
}

func seedIntegrations() []models.Integration {
	return []models.Integration{
		{ID: "int1", Name: "LIS (Cerner)", Type: models.IntegrationLIS, Tenant: "General Hospital", Status: models.IntegrationConnected, LastSync: "1 hours ago"},
		{ID: "int2", Name: "EHR (Epic)", Type: models.IntegrationEHR, Tenant: "General Hospital", Status: models.IntegrationError, LastSync: "5 hours ago"},
		{ID: "int3", Name: "PACS (Sectra)", Type: models.IntegrationPACS, Tenant: "Metro Clinic", Status: models.IntegrationConnected, LastSync: "1 hours ago"},
		{ID: "int4", Name: "LIS (Meditech)", Type: models.IntegrationLIS, Tenant: "Metro Clinic", Status: models.IntegrationDisconnected, LastSync: "3 days ago"},
	}
}

func seedModels() []models.AiModel {
	return []models.AiModel{
		{ID: "m1", Version: "Gemini-Flash-Histology-v1.2", Concordance: 94.6, Status: models.ModelProduction, StabilityScore: 0.92, TotalRuns: 184},
		{ID: "m2", Version: "Gemini-Flash-Histology-v1.1", Concordance: 92.1, Status: models.ModelArchived, StabilityScore: 0.88, TotalRuns: 3205},
		{ID: "m3", Version: "Internal-CNN-v3.4", Concordance: 88.5, Status: models.ModelArchived, StabilityScore: 0.91, TotalRuns: 10532},
	}
}

func seedExperiments() []models.MlflowExperiment {
	return []models.MlflowExperiment{
		{ID: "exp1", Name: "ResNet50-Hyperparam-Tune-v2", Accuracy: floatPtr(0.953), Status: models.ExperimentCompleted},
		{ID: "exp2", Name: "ViT-Base-Augmentation-Strategy", Status: models.ExperimentRunning},
		{ID: "exp3", Name: "InceptionV3-Stain-Normalization", Status: models.ExperimentFailed},
	}
}

func seedChangelog() []models.ChangelogItem {
	return []models.ChangelogItem{
		{ID: "cl1", Type: models.ChangelogImprove, Date: "October 2025", Description: "Keyboard shortcuts for switching between annotation tools."},
		{ID: "cl2", Type: models.ChangelogImprove, Date: "October 2025", Description: "Natural language cohort queries can export results for notebook analysis."},
	}
}

func seedCourses() []models.Course {
	return []models.Course{
		{ID: "course1", Title: "Introduction to Digital Pathology", Description: "A comprehensive overview of digital slide scanning, viewing, and analysis.", AssignedStudents: []string{"u8"}},
		{ID: "course2", Title: "Advanced Histological Staining", Description: "Covers IHC, ISH, and other advanced staining techniques.", AssignedStudents: []string{}},
	}
}

func seedActivities(now time.Time) []models.Activity {
	return []models.Activity{
		{ID: "a1", Icon: models.ActivityCaseNew, Text: `New STAT case S24-1005 added to tenant "t2".`, Timestamp: now.Add(-1 * time.Hour)},
		{ID: "a2", Icon: models.ActivityCaseClosed, Text: "Case S24-1003 was reported by Dr. Ben Carter.", Timestamp: now.Add(-3 * time.Hour)},
		{ID: "a3", Icon: models.ActivityFeedbackNew, Text: `New feedback "Suggestion" submitted by Dr. Evelyn Reed.`, Timestamp: now.Add(-5 * time.Hour)},
		{ID: "a4", Icon: models.ActivityUserAdded, Text: `User "New Student" added to tenant "t1" by Prof. Alan Grant.`, Timestamp: now.Add(-8 * time.Hour)},
		{ID: "a5", Icon: models.ActivityCaseNew, Text: `New case S24-1006 created for tenant "t1".`, Timestamp: daysAgo(now, 1)},
		{ID: "a6", Icon: models.ActivitySystemUpdate, Text: `AI model "gemini-2.5-flash" was updated.`, Timestamp: daysAgo(now, 2)},
		{ID: "a7", Icon: models.ActivityCaseClosed, Text: "Case S24-1004 was closed and archived.", Timestamp: daysAgo(now, 2)},
	}
}

func seedSettings() models.SystemSettings {
	return models.SystemSettings{EmailOnError: true, WeeklyReport: false, MFAEnforced: false}
}
