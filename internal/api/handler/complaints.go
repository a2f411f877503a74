package handler

import (
	"errors"
	"log"
	"net/http"

	"govlens/backend/internal/analysis"
	"govlens/backend/internal/complaint"
	"govlens/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type submissionRequest struct {
	Photo       models.EncodedMedia `json:"photo"`
	Audio       models.EncodedMedia `json:"audio"`
	Description string              `json:"description"`
	Location    string              `json:"location"`
}

func (r submissionRequest) toSubmission() complaint.Submission {
	return complaint.Submission{
		Photo:       r.Photo,
		Audio:       r.Audio,
		Description: r.Description,
		Location:    r.Location,
	}
}

// AnalyzeSubmission runs transcription and classification over the evidence.
// AI failures never surface as errors here; the citizen always gets a
// reviewable result.
func (h *Handler) AnalyzeSubmission(c *gin.Context) {
	var req submissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission payload"})
		return
	}

	result, err := h.Intake.Analyze(c.Request.Context(), req.toSubmission())
	if err != nil {
		if errors.Is(err, complaint.ErrNoEvidence) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

type confirmRequest struct {
	submissionRequest
	Transcript     string                `json:"transcript"`
	Classification models.Classification `json:"classification" binding:"required"`
}

// ConfirmSubmission materializes a reviewed submission as a durable
// complaint. A failed durable write still answers 201: the complaint is live
// for the session, and the persisted flag tells the client to warn the user.
func (h *Handler) ConfirmSubmission(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confirmation payload"})
		return
	}

	sub := req.toSubmission()
	if !sub.HasEvidence() {
		c.JSON(http.StatusBadRequest, gin.H{"error": complaint.ErrNoEvidence.Error()})
		return
	}

	created, err := h.Intake.Confirm(sub, complaint.AnalysisResult{
		Transcript:     req.Transcript,
		Classification: req.Classification,
	})

	persisted := true
	var perr *complaint.PersistenceError
	if errors.As(err, &perr) {
		log.Printf("WARNING: Complaint %s kept in memory only: %v", created.ID, err)
		persisted = false
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create complaint"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"complaint": created, "persisted": persisted})
}

// ListComplaints returns the full collection, most recent first.
func (h *Handler) ListComplaints(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"complaints": h.Store.All()})
}

// GetComplaint returns a single complaint by id.
func (h *Handler) GetComplaint(c *gin.Context) {
	found, err := h.Store.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	c.JSON(http.StatusOK, found)
}

// GetPendingStages returns the pipeline stages the complaint has not reached
// yet, in pipeline order.
func (h *Handler) GetPendingStages(c *gin.Context) {
	found, err := h.Store.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": complaint.PendingStages(found)})
}

type transitionRequest struct {
	Stage  models.Status `json:"stage" binding:"required"`
	Action string        `json:"action"`
}

func knownStage(stage models.Status) bool {
	for _, s := range models.Pipeline {
		if s == stage {
			return true
		}
	}
	return false
}

// TransitionComplaint advances a complaint to the requested stage. Officer
// only. The stage must be one of the five pipeline values, but any pipeline
// stage is reachable from any other; repeated stages append repeated events.
func (h *Handler) TransitionComplaint(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil || !knownStage(req.Stage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid pipeline stage is required"})
		return
	}

	officer := c.GetString("officer_name")

	updated, err := h.Engine.Transition(c.Param("id"), req.Stage, officer, req.Action)

	persisted := true
	var perr *complaint.PersistenceError
	switch {
	case errors.Is(err, complaint.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	case errors.Is(err, complaint.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.As(err, &perr):
		log.Printf("WARNING: Transition on %s kept in memory only: %v", updated.ID, err)
		persisted = false
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transition failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaint": updated, "persisted": persisted})
}

// OfficerSummary serves the dashboard aggregates.
func (h *Handler) OfficerSummary(c *gin.Context) {
	c.JSON(http.StatusOK, analysis.Summarize(h.Store.All()))
}
