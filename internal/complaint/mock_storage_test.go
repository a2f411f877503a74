package complaint_test

import (
	"encoding/json"

	"govlens/backend/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock over the storage boundary, used to inject
// durable-write failures.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) LoadDocument() ([]models.Complaint, bool, error) {
	args := m.Called()
	var complaints []models.Complaint
	if args.Get(0) != nil {
		complaints = args.Get(0).([]models.Complaint)
	}
	return complaints, args.Bool(1), args.Error(2)
}

func (m *MockStorage) SaveDocument(complaints []models.Complaint) error {
	args := m.Called(complaints)
	return args.Error(0)
}

func (m *MockStorage) NextSequence() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) AppendTransitionAudit(audit *models.TransitionAudit) error {
	args := m.Called(audit)
	return args.Error(0)
}

func (m *MockStorage) SaveOfficerIfNotExists(name, designation string, departments []string) (*models.Officer, error) {
	args := m.Called(name, designation, departments)
	return args.Get(0).(*models.Officer), args.Error(1)
}

func (m *MockStorage) PublishStatusUpdate(update models.StatusUpdate) error {
	args := m.Called(update)
	return args.Error(0)
}

// memStorage is a hand-rolled in-memory storage used where real document
// semantics matter (seeding, round trips). It serializes through the same
// JSON layout as the Redis document.
type memStorage struct {
	doc       []byte
	hasDoc    bool
	seq       int64
	saves     int
	audits    []*models.TransitionAudit
	published []models.StatusUpdate
}

func newMemStorage() *memStorage { return &memStorage{} }

func (m *memStorage) LoadDocument() ([]models.Complaint, bool, error) {
	if !m.hasDoc {
		return nil, false, nil
	}
	var complaints []models.Complaint
	if err := json.Unmarshal(m.doc, &complaints); err != nil {
		return nil, false, err
	}
	return complaints, true, nil
}

func (m *memStorage) SaveDocument(complaints []models.Complaint) error {
	doc, err := json.Marshal(complaints)
	if err != nil {
		return err
	}
	m.doc = doc
	m.hasDoc = true
	m.saves++
	return nil
}

func (m *memStorage) NextSequence() (int64, error) {
	m.seq++
	return m.seq, nil
}

func (m *memStorage) AppendTransitionAudit(audit *models.TransitionAudit) error {
	m.audits = append(m.audits, audit)
	return nil
}

func (m *memStorage) SaveOfficerIfNotExists(name, designation string, departments []string) (*models.Officer, error) {
	return &models.Officer{Name: name, Designation: designation, Departments: pq.StringArray(departments)}, nil
}

func (m *memStorage) PublishStatusUpdate(update models.StatusUpdate) error {
	m.published = append(m.published, update)
	return nil
}
