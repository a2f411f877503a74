package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"govlens/backend/internal/config"
	"govlens/backend/internal/models"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the durable-medium boundary of the service. The complaint
// collection itself lives in Redis as a single JSON document under a fixed
// key; PostgreSQL holds the officer registry and the transition audit rows.
type Storage interface {
	LoadDocument() ([]models.Complaint, bool, error)
	SaveDocument(complaints []models.Complaint) error
	NextSequence() (int64, error)

	AppendTransitionAudit(audit *models.TransitionAudit) error
	SaveOfficerIfNotExists(name, designation string, departments []string) (*models.Officer, error)

	PublishStatusUpdate(update models.StatusUpdate) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor. DB may be nil for deployments without
// PostgreSQL; the audit and officer methods become no-ops in that case.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// LoadDocument reads the full complaint collection from Redis. The second
// return value reports whether a document existed at all, so the caller can
// distinguish "never seeded" from "empty collection".
func (s *Service) LoadDocument() ([]models.Complaint, bool, error) {
	raw, err := s.Redis.Get(s.Ctx, config.ComplaintsKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var complaints []models.Complaint
	if err := json.Unmarshal([]byte(raw), &complaints); err != nil {
		log.Printf("ERROR: Failed to decode complaint document: %v", err)
		return nil, false, err
	}
	return complaints, true, nil
}

// SaveDocument serializes the entire collection and writes it under the fixed
// key. There is no incremental persistence; the collection is expected to stay
// small (a session's own complaints, or an officer's active queue).
func (s *Service) SaveDocument(complaints []models.Complaint) error {
	doc, err := json.Marshal(complaints)
	if err != nil {
		return err
	}

	if err := s.Redis.Set(s.Ctx, config.ComplaintsKey, doc, 0).Err(); err != nil {
		log.Printf("ERROR: Failed to persist complaint document: %v", err)
		return err
	}
	return nil
}

// NextSequence advances the complaint id counter.
func (s *Service) NextSequence() (int64, error) {
	return s.Redis.Incr(s.Ctx, config.SequenceKey).Result()
}

// AppendTransitionAudit inserts one audit row in PostgreSQL. Rows are never
// updated or deleted afterwards.
func (s *Service) AppendTransitionAudit(audit *models.TransitionAudit) error {
	if s.DB == nil {
		return nil
	}

	if err := s.DB.Create(audit).Error; err != nil {
		log.Printf("ERROR: Failed to save transition audit for %s: %v", audit.ComplaintID, err)
		return err
	}
	return nil
}

// SaveOfficerIfNotExists looks an officer up by name and creates the record on
// first contact.
func (s *Service) SaveOfficerIfNotExists(name, designation string, departments []string) (*models.Officer, error) {
	if s.DB == nil {
		return &models.Officer{Name: name, Designation: designation, Departments: pq.StringArray(departments)}, nil
	}

	var officer models.Officer
	defaults := models.Officer{
		Name:        name,
		Designation: designation,
		Departments: pq.StringArray(departments),
	}

	result := s.DB.Where("name = ?", name).FirstOrCreate(&officer, defaults)
	if result.Error != nil {
		log.Printf("ERROR: Failed to save officer %s on first contact: %v", name, result.Error)
		return nil, result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("INFO: New officer %s saved to database (ID: %s).", name, officer.ID)
	}

	return &officer, nil
}

// PublishStatusUpdate publishes a status update on the Redis Pub/Sub channel.
func (s *Service) PublishStatusUpdate(update models.StatusUpdate) error {
	msgBytes, err := json.Marshal(update)
	if err != nil {
		return err
	}

	if err := s.Redis.Publish(s.Ctx, config.UpdatesChannel, string(msgBytes)).Err(); err != nil {
		return err
	}

	return nil
}

// SubscribeStatusUpdates subscribes to the status update channel. The caller
// owns the returned PubSub and must close it.
func (s *Service) SubscribeStatusUpdates() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, config.UpdatesChannel)
}
