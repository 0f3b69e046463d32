package sessionstore

import (
	"sync"

	"expense-claims-front/models"

	"github.com/google/uuid"
)

// Provider - хранилище активных сессий.
// Только память процесса, локальной персистентности нет
type Provider interface {
	Create() *models.Session
	Get(id string) *models.Session
	Delete(id string)
}

func NewInstance() Provider {
	return &impl{
		sessions: map[string]*models.Session{},
	}
}

type impl struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func (i *impl) Create() *models.Session {
	rec := models.NewSession(uuid.NewString())
	i.mu.Lock()
	defer i.mu.Unlock()
	i.sessions[rec.ID] = rec
	return rec
}

func (i *impl) Get(id string) *models.Session {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.sessions[id]
}

func (i *impl) Delete(id string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.sessions, id)
}
