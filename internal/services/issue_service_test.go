package services

import (
	"testing"

	"github.com/Giridhar-07/civitrack-app/internal/dto"
	"github.com/Giridhar-07/civitrack-app/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIssueWritesInitialLog(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)

	issue := createTestIssue(t, svc, reporter.ID, 40.7128, -74.0060)

	assert.Equal(t, models.StatusReported, issue.Status)
	assert.NotEqual(t, uuid.Nil, issue.Location.ID)

	logs := auditTrail(t, db, issue.ID)
	require.Len(t, logs, 1)
	assert.Nil(t, logs[0].OldStatus)
	assert.Equal(t, models.StatusReported, logs[0].NewStatus)
	assert.Equal(t, reporter.ID, logs[0].ActorID)
	assert.Equal(t, "Issue reported", logs[0].Comment)
}

func TestCreateIssueValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)

	base := func() *dto.CreateIssueRequest {
		return &dto.CreateIssueRequest{
			Title:       "Broken streetlight",
			Description: "Dark corner at night",
			Category:    models.CategorySafety,
			Location:    dto.LocationInput{Latitude: 10, Longitude: 20},
		}
	}

	req := base()
	req.Title = "   "
	_, err := svc.Create(reporter.ID, req)
	assert.ErrorIs(t, err, ErrTitleRequired)

	req = base()
	req.Description = ""
	_, err = svc.Create(reporter.ID, req)
	assert.ErrorIs(t, err, ErrDescriptionRequired)

	req = base()
	req.Category = "pollution"
	_, err = svc.Create(reporter.ID, req)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	req = base()
	req.Location.Latitude = 91
	_, err = svc.Create(reporter.ID, req)
	assert.ErrorIs(t, err, ErrInvalidLatitude)

	req = base()
	req.Location.Longitude = -181
	_, err = svc.Create(reporter.ID, req)
	assert.ErrorIs(t, err, ErrInvalidLongitude)

	// Nothing got persisted along the way
	var count int64
	require.NoError(t, db.Model(&models.Issue{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestChangeStatusAppendsAuditChain(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)
	p := principalFor(reporter)

	issue := createTestIssue(t, svc, reporter.ID, 40.7128, -74.0060)

	steps := []models.IssueStatus{
		models.StatusUnderReview,
		models.StatusInProgress,
		models.StatusResolved,
		models.StatusClosed,
	}
	for _, next := range steps {
		updated, err := svc.ChangeStatus(issue.ID, p, next, "")
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	// Replaying the trail in write order reconstructs the full history:
	// the first entry has no prior status, every later entry's old status
	// matches its predecessor's new status, and the tail matches the row.
	logs := auditTrail(t, db, issue.ID)
	require.Len(t, logs, len(steps)+1)
	assert.Nil(t, logs[0].OldStatus)
	for i := 1; i < len(logs); i++ {
		require.NotNil(t, logs[i].OldStatus)
		assert.Equal(t, logs[i-1].NewStatus, *logs[i].OldStatus)
	}

	final, err := svc.Get(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, logs[len(logs)-1].NewStatus, final.Status)
}

func TestChangeStatusSameValueIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)

	issue := createTestIssue(t, svc, reporter.ID, 40.7128, -74.0060)

	updated, err := svc.ChangeStatus(issue.ID, principalFor(reporter), models.StatusReported, "still reported")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReported, updated.Status)

	// Only the creation entry exists
	assert.Len(t, auditTrail(t, db, issue.ID), 1)
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)

	issue := createTestIssue(t, svc, reporter.ID, 40.7128, -74.0060)

	_, err := svc.ChangeStatus(issue.ID, principalFor(reporter), "archived", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Len(t, auditTrail(t, db, issue.ID), 1)
}

func TestChangeStatusForbiddenForStrangers(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)
	stranger := createTestUser(t, db, "bob", models.RoleUser)

	issue := createTestIssue(t, svc, reporter.ID, 40.7128, -74.0060)

	_, err := svc.ChangeStatus(issue.ID, principalFor(stranger), models.StatusResolved, "")
	assert.ErrorIs(t, err, ErrForbidden)

	// Denied attempt leaves no trace
	got, err := svc.Get(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReported, got.Status)
	assert.Len(t, auditTrail(t, db, issue.ID), 1)
}

func TestChangeStatusAllowedForAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)
	admin := createTestUser(t, db, "mod", models.RoleAdmin)

	issue := createTestIssue(t, svc, reporter.ID, 40.7128, -74.0060)

	updated, err := svc.ChangeStatus(issue.ID, principalFor(admin), models.StatusInProgress, "crew dispatched")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	logs := auditTrail(t, db, issue.ID)
	require.Len(t, logs, 2)
	assert.Equal(t, admin.ID, logs[1].ActorID)
	assert.Equal(t, "crew dispatched", logs[1].Comment)
}

func TestChangeStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)

	_, err := svc.ChangeStatus(uuid.New(), principalFor(reporter), models.StatusClosed, "")
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestUpdateIssueFieldsAndStatusTogether(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)
	p := principalFor(reporter)

	issue := createTestIssue(t, svc, reporter.ID, 40.7128, -74.0060)

	title := "Deep pothole on Main Street"
	status := models.StatusUnderReview
	updated, err := svc.Update(issue.ID, p, &dto.UpdateIssueRequest{
		Title:     &title,
		Status:    &status,
		Comment:   "city inspector assigned",
		AddPhotos: []string{"https://cdn.example.com/pothole.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.Equal(t, models.StatusUnderReview, updated.Status)
	assert.Equal(t, []string{"https://cdn.example.com/pothole.jpg"}, []string(updated.Photos))

	logs := auditTrail(t, db, issue.ID)
	require.Len(t, logs, 2)
	assert.Equal(t, "city inspector assigned", logs[1].Comment)
}

func TestUpdateIssueMovesLocation(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)

	issue := createTestIssue(t, svc, reporter.ID, 40.7128, -74.0060)

	updated, err := svc.Update(issue.ID, principalFor(reporter), &dto.UpdateIssueRequest{
		Location: &dto.LocationInput{Latitude: 40.73, Longitude: -73.99, Address: "2nd Ave"},
	})
	require.NoError(t, err)

	assert.InDelta(t, 40.73, updated.Location.Latitude, 1e-9)
	assert.InDelta(t, -73.99, updated.Location.Longitude, 1e-9)
	assert.Equal(t, "2nd Ave", updated.Location.Address)
	// Same location row, updated in place
	assert.Equal(t, issue.LocationID, updated.LocationID)
}

func TestUpdateIssueForbiddenForStrangers(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)
	stranger := createTestUser(t, db, "bob", models.RoleUser)

	issue := createTestIssue(t, svc, reporter.ID, 40.7128, -74.0060)

	title := "hijacked"
	_, err := svc.Update(issue.ID, principalFor(stranger), &dto.UpdateIssueRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pothole on Main Street", got.Title)
}

func TestDeleteIssueCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	flags := NewFlagService(db)
	requests := NewStatusRequestService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)
	other := createTestUser(t, db, "bob", models.RoleUser)

	issue := createTestIssue(t, svc, reporter.ID, 40.7128, -74.0060)
	locationID := issue.LocationID

	_, err := flags.Flag(issue.ID, other.ID, "spam")
	require.NoError(t, err)
	_, err = requests.RequestChange(issue.ID, other.ID, &dto.CreateStatusRequestRequest{Status: models.StatusResolved})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(issue.ID, principalFor(reporter)))

	_, err = svc.Get(issue.ID)
	assert.ErrorIs(t, err, ErrIssueNotFound)

	var count int64
	require.NoError(t, db.Model(&models.StatusLog{}).Where("issue_id = ?", issue.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&models.Flag{}).Where("issue_id = ?", issue.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&models.StatusRequest{}).Where("issue_id = ?", issue.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&models.Location{}).Where("id = ?", locationID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteIssueForbiddenForStrangers(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)
	stranger := createTestUser(t, db, "bob", models.RoleUser)

	issue := createTestIssue(t, svc, reporter.ID, 40.7128, -74.0060)

	err := svc.Delete(issue.ID, principalFor(stranger))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(issue.ID)
	require.NoError(t, err)
}

func TestListIssuesFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "alice", models.RoleUser)
	p := principalFor(reporter)

	road := createTestIssue(t, svc, reporter.ID, 40.7, -74.0)
	water, err := svc.Create(reporter.ID, &dto.CreateIssueRequest{
		Title:       "Burst water main",
		Description: "Flooding on Elm Street",
		Category:    models.CategoryWater,
		Location:    dto.LocationInput{Latitude: 40.71, Longitude: -74.01},
	})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(water.ID, p, models.StatusInProgress, "")
	require.NoError(t, err)

	byCategory, err := svc.List(&dto.ListIssuesQuery{Category: "water"})
	require.NoError(t, err)
	require.Len(t, byCategory.Issues, 1)
	assert.Equal(t, water.ID, byCategory.Issues[0].ID)

	byStatus, err := svc.List(&dto.ListIssuesQuery{Status: "reported"})
	require.NoError(t, err)
	require.Len(t, byStatus.Issues, 1)
	assert.Equal(t, road.ID, byStatus.Issues[0].ID)

	bySearch, err := svc.List(&dto.ListIssuesQuery{Search: "ELM"})
	require.NoError(t, err)
	require.Len(t, bySearch.Issues, 1)
	assert.Equal(t, water.ID, bySearch.Issues[0].ID)

	all, err := svc.List(&dto.ListIssuesQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)
	assert.Equal(t, 1, all.Page)
}

func TestListByReporter(t *testing.T) {
	db := newTestDB(t)
	svc := NewIssueService(db)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)

	createTestIssue(t, svc, alice.ID, 40.7, -74.0)
	createTestIssue(t, svc, bob.ID, 40.71, -74.01)

	mine, err := svc.ListByReporter(alice.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, mine.Issues, 1)
	assert.Equal(t, alice.ID, mine.Issues[0].ReporterID)
}
