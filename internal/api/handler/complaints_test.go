package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"govlens/backend/internal/classify"
	"govlens/backend/internal/complaint"
	"govlens/backend/internal/models"
	"govlens/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage is an in-memory storage.Storage for handler tests.
type fakeStorage struct {
	doc       []models.Complaint
	hasDoc    bool
	seq       int64
	audits    []models.TransitionAudit
	published []models.StatusUpdate
}

func (f *fakeStorage) LoadDocument() ([]models.Complaint, bool, error) {
	return f.doc, f.hasDoc, nil
}

func (f *fakeStorage) SaveDocument(complaints []models.Complaint) error {
	f.doc = complaints
	f.hasDoc = true
	return nil
}

func (f *fakeStorage) NextSequence() (int64, error) {
	f.seq++
	return f.seq, nil
}

func (f *fakeStorage) AppendTransitionAudit(audit *models.TransitionAudit) error {
	f.audits = append(f.audits, *audit)
	return nil
}

func (f *fakeStorage) SaveOfficerIfNotExists(name, designation string, departments []string) (*models.Officer, error) {
	return &models.Officer{ID: "officer-1", Name: name, Designation: designation, Departments: pq.StringArray(departments)}, nil
}

func (f *fakeStorage) PublishStatusUpdate(update models.StatusUpdate) error {
	f.published = append(f.published, update)
	return nil
}

var _ storage.Storage = (*fakeStorage)(nil)

func newTestRouter(t *testing.T, seed complaint.SeedFunc) (*gin.Engine, *complaint.Store, *fakeStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := &fakeStorage{}
	store := complaint.NewStore(fake, seed)
	_, err := store.LoadAll()
	require.NoError(t, err)

	intake := complaint.NewService(store, classify.Unconfigured{}, fake)
	engine := complaint.NewEngine(store, fake)
	h := NewHandler(store, intake, engine, nil, fake)

	r := gin.New()
	r.POST("/auth/anon", h.GetAnonID)
	r.POST("/auth/officer", h.OfficerLogin)
	r.POST("/complaints/analyze", h.AnalyzeSubmission)
	r.POST("/complaints", h.ConfirmSubmission)
	r.GET("/complaints", h.ListComplaints)
	r.GET("/complaints/:id", h.GetComplaint)
	r.GET("/complaints/:id/pending", h.GetPendingStages)
	r.POST("/complaints/:id/transition", h.OfficerRequired(), h.TransitionComplaint)
	r.GET("/officer/summary", h.OfficerRequired(), h.OfficerSummary)
	return r, store, fake
}

func seedOne(now time.Time) []models.Complaint {
	return []models.Complaint{
		{
			ID:          "AP-2026-001",
			SubmittedAt: now,
			Citizen:     models.Citizen{Name: "Ravi Kumar", Phone: "9876543210"},
			Issue:       models.Issue{Description: "Huge pothole", Location: "Vijayawada, Ward 15"},
			AIAnalysis: models.Classification{
				PrimaryDepartment: "Roads & Buildings",
				Severity:          models.SeverityHigh,
				EstimatedCost:     "₹2,50,000",
			},
			Status:   models.StatusSubmitted,
			Timeline: []models.TimelineEvent{{Stage: models.StatusSubmitted, Timestamp: now}},
		},
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func officerToken(t *testing.T) string {
	t.Helper()
	token, err := generateToken("officer-1", "K. Reddy", roleOfficer)
	require.NoError(t, err)
	return token
}

func citizenToken(t *testing.T) string {
	t.Helper()
	token, err := generateToken("anon-1", "Anonymous", roleCitizen)
	require.NoError(t, err)
	return token
}

func TestListComplaints_ReturnsSeededCollection(t *testing.T) {
	r, _, _ := newTestRouter(t, seedOne)

	w := doJSON(t, r, http.MethodGet, "/complaints", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Complaints []models.Complaint `json:"complaints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Complaints, 1)
	assert.Equal(t, "AP-2026-001", resp.Complaints[0].ID)
}

func TestGetComplaint_UnknownIDIs404(t *testing.T) {
	r, _, _ := newTestRouter(t, seedOne)

	w := doJSON(t, r, http.MethodGet, "/complaints/AP-2026-999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyzeSubmission_NoEvidenceIs400(t *testing.T) {
	r, _, _ := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/complaints/analyze", "", gin.H{"location": "Guntur"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeSubmission_UnreachableAIFallsBack(t *testing.T) {
	r, _, _ := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/complaints/analyze", "", gin.H{"description": "Broken pipe"})
	require.Equal(t, http.StatusOK, w.Code)

	var result complaint.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Classification.Fallback)
	assert.Equal(t, "Municipal Administration", result.Classification.PrimaryDepartment)
}

func TestConfirmSubmission_CreatesComplaint(t *testing.T) {
	r, store, _ := newTestRouter(t, nil)

	body := gin.H{
		"description":    "Street light out for a week",
		"classification": classify.Fallback(),
	}
	w := doJSON(t, r, http.MethodPost, "/complaints", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Complaint models.Complaint `json:"complaint"`
		Persisted bool             `json:"persisted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Persisted)
	assert.Regexp(t, `^AP-\d{4}-\d{3,}$`, resp.Complaint.ID)
	assert.Equal(t, models.StatusSubmitted, resp.Complaint.Status)

	all := store.All()
	require.Len(t, all, 1)
	assert.Equal(t, resp.Complaint.ID, all[0].ID)
}

func TestConfirmSubmission_NoEvidenceIs400(t *testing.T) {
	r, _, _ := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/complaints", "", gin.H{
		"classification": classify.Fallback(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransition_RequiresOfficerRole(t *testing.T) {
	r, _, _ := newTestRouter(t, seedOne)
	body := gin.H{"stage": models.StatusAssigned, "action": "Work order created"}

	w := doJSON(t, r, http.MethodPost, "/complaints/AP-2026-001/transition", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "missing token")

	w = doJSON(t, r, http.MethodPost, "/complaints/AP-2026-001/transition", citizenToken(t), body)
	assert.Equal(t, http.StatusForbidden, w.Code, "citizen token")
}

func TestTransition_OfficerAdvancesComplaint(t *testing.T) {
	r, store, fake := newTestRouter(t, seedOne)

	body := gin.H{"stage": models.StatusAssigned, "action": "Work order created"}
	w := doJSON(t, r, http.MethodPost, "/complaints/AP-2026-001/transition", officerToken(t), body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Complaint models.Complaint `json:"complaint"`
		Persisted bool             `json:"persisted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Persisted)
	assert.Equal(t, models.StatusAssigned, resp.Complaint.Status)
	require.Len(t, resp.Complaint.Timeline, 2)
	assert.Equal(t, "K. Reddy", resp.Complaint.Timeline[1].Officer)

	stored, err := store.FindByID("AP-2026-001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, stored.Status)

	require.Len(t, fake.audits, 1)
	assert.Equal(t, "AP-2026-001", fake.audits[0].ComplaintID)
	require.Len(t, fake.published, 1)
	assert.Equal(t, models.StatusAssigned, fake.published[0].Stage)
}

func TestTransition_RejectsUnknownStage(t *testing.T) {
	r, _, _ := newTestRouter(t, seedOne)

	w := doJSON(t, r, http.MethodPost, "/complaints/AP-2026-001/transition", officerToken(t),
		gin.H{"stage": "Archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransition_UnknownComplaintIs404(t *testing.T) {
	r, _, _ := newTestRouter(t, seedOne)

	w := doJSON(t, r, http.MethodPost, "/complaints/AP-2026-999/transition", officerToken(t),
		gin.H{"stage": models.StatusAssigned})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPendingStages(t *testing.T) {
	r, _, _ := newTestRouter(t, seedOne)

	w := doJSON(t, r, http.MethodGet, "/complaints/AP-2026-001/pending", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Pending []models.Status `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []models.Status{
		models.StatusAssigned,
		models.StatusUnderReview,
		models.StatusActionTaken,
		models.StatusResolved,
	}, resp.Pending)
}

func TestOfficerSummary(t *testing.T) {
	r, _, _ := newTestRouter(t, seedOne)

	w := doJSON(t, r, http.MethodGet, "/officer/summary", officerToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total              int     `json:"total"`
		TotalEstimatedCost float64 `json:"total_estimated_cost"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 250000.0, resp.TotalEstimatedCost)
}

func TestAuthEndpoints_IssueUsableTokens(t *testing.T) {
	r, _, _ := newTestRouter(t, seedOne)

	w := doJSON(t, r, http.MethodPost, "/auth/anon", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var anon struct {
		Token  string `json:"token"`
		AnonID string `json:"anon_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &anon))
	assert.NotEmpty(t, anon.Token)
	assert.NotEmpty(t, anon.AnonID)

	w = doJSON(t, r, http.MethodPost, "/auth/officer", "", gin.H{
		"name":        "K. Reddy",
		"designation": "Municipal Commissioner",
		"departments": []string{"Municipal Administration"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	// The issued officer token must pass the officer guard.
	path := fmt.Sprintf("/complaints/%s/transition", "AP-2026-001")
	w = doJSON(t, r, http.MethodPost, path, login.Token, gin.H{"stage": models.StatusAssigned})
	assert.Equal(t, http.StatusOK, w.Code)
}
