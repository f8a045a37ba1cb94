package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brecho/backend/internal/models"
	"github.com/brecho/backend/internal/storage"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")
)

// userRecord is the persisted form of a seller account. models.User
// excludes the password hash from JSON for API responses, so the store
// keeps its own representation where the hash survives the round trip.
type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r userRecord) toUser() *models.User {
	return &models.User{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

// UserService manages seller accounts, persisted alongside the item
// collection in the data directory.
type UserService struct {
	mu    sync.RWMutex
	store *storage.JSONStore
	users []userRecord
}

func NewUserService(dataDir string) (*UserService, error) {
	store, err := storage.NewJSONStore(dataDir, "users.json")
	if err != nil {
		return nil, err
	}

	s := &UserService{store: store}
	if err := store.Load(&s.users); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(req.Email)
	if s.byEmail(email) != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	record := userRecord{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		CreatedAt:    time.Now().UTC(),
	}

	next := append(append([]userRecord{}, s.users...), record)
	if err := s.store.Save(next); err != nil {
		return nil, err
	}
	s.users = next

	return record.toUser(), nil
}

func (s *UserService) Login(req *models.LoginRequest) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record := s.byEmail(normalizeEmail(req.Email))
	if record == nil {
		return nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return record.toUser(), nil
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.users {
		if r.ID == id {
			return r.toUser(), nil
		}
	}
	return nil, ErrUserNotFound
}

// byEmail returns a copy of the matching record. Callers hold the lock.
func (s *UserService) byEmail(email string) *userRecord {
	for _, r := range s.users {
		if r.Email == email {
			recordCopy := r
			return &recordCopy
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
