package complaint

import (
	"context"
	"log"
	"time"

	"govlens/backend/internal/classify"
	"govlens/backend/internal/config"
	"govlens/backend/internal/models"
	"govlens/backend/internal/storage"
)

// Submission is the transient evidence bundle collected from a citizen. It is
// never persisted; only a fully classified and confirmed submission becomes a
// durable complaint.
type Submission struct {
	Photo       models.EncodedMedia
	Audio       models.EncodedMedia
	Description string
	Location    string
}

// HasEvidence reports whether the submission carries anything at all.
func (s Submission) HasEvidence() bool {
	return !s.Photo.IsZero() || !s.Audio.IsZero() || s.Description != ""
}

// AnalysisResult is what the citizen reviews before confirming.
type AnalysisResult struct {
	Transcript     string                `json:"transcript,omitempty"`
	Classification models.Classification `json:"classification"`
}

// Service handles the intake flow: analyze evidence, then materialize a
// confirmed submission as a durable complaint.
type Service struct {
	Store      *Store
	Classifier classify.Classifier
	Storage    storage.Storage
}

// NewService creates a new intake service.
func NewService(store *Store, classifier classify.Classifier, s storage.Storage) *Service {
	return &Service{Store: store, Classifier: classifier, Storage: s}
}

// Analyze transcribes attached audio and classifies the evidence. AI failures
// are absorbed: a failed transcription degrades to a sentinel transcript and a
// failed classification degrades to the documented fallback record, so the
// citizen is never blocked. Only a submission with no evidence at all is
// rejected, with ErrNoEvidence.
func (s *Service) Analyze(ctx context.Context, sub Submission) (AnalysisResult, error) {
	if !sub.HasEvidence() {
		return AnalysisResult{}, ErrNoEvidence
	}

	var result AnalysisResult

	if !sub.Audio.IsZero() {
		transcript, err := s.Classifier.Transcribe(ctx, sub.Audio)
		if err != nil {
			log.Printf("WARNING: Transcription failed, continuing without transcript: %v", err)
			transcript = config.TranscriptFailureSentinel
		}
		result.Transcript = transcript
	}

	classification, err := s.Classifier.Classify(ctx, classify.Request{
		Photo:       sub.Photo,
		Description: sub.Description,
		Transcript:  result.Transcript,
	})
	if err != nil {
		log.Printf("WARNING: Classification failed, substituting fallback record: %v", err)
		classification = classify.Fallback()
	}
	result.Classification = classification

	return result, nil
}

// Confirm materializes the reviewed submission as a new complaint: it mints
// the id, stamps the Submitted timeline event atomically with creation and
// inserts the complaint at the front of the store. A *PersistenceError is
// passed through as a warning; the complaint is still live for the session.
func (s *Service) Confirm(sub Submission, result AnalysisResult) (models.Complaint, error) {
	now := time.Now()

	location := sub.Location
	if location == "" {
		location = config.DefaultLocation
	}

	c := models.Complaint{
		ID:          s.Store.NextID(),
		SubmittedAt: now,
		Citizen: models.Citizen{
			Name:  config.AnonymousCitizenName,
			Phone: config.AnonymousCitizenPhone,
		},
		Issue: models.Issue{
			Photo:           sub.Photo.Data,
			Description:     sub.Description,
			AudioTranscript: result.Transcript,
			Location:        location,
		},
		AIAnalysis: result.Classification,
		Status:     models.StatusSubmitted,
		Timeline: []models.TimelineEvent{
			{Stage: models.StatusSubmitted, Timestamp: now},
		},
	}

	err := s.Store.Create(c)

	update := models.StatusUpdate{
		ComplaintID: c.ID,
		Stage:       models.StatusSubmitted,
		Timestamp:   now,
	}
	if pubErr := s.Storage.PublishStatusUpdate(update); pubErr != nil {
		log.Printf("WARNING: Status update for %s not published: %v", c.ID, pubErr)
	}

	return c, err
}
