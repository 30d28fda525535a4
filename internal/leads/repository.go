package leads

import (
	"sync"
	"time"

	"steam-roi/internal/model"
)

// Repository retains accepted evaluations in creation order.
type Repository interface {
	// Append assigns the next id and returns the stored lead.
	Append(lead model.Lead) model.Lead
	List() []model.Lead
}

// MemoryRepository keeps leads for the lifetime of the process. Ids start
// at 1 and are strictly sequential.
type MemoryRepository struct {
	mu     sync.Mutex
	leads  []model.Lead
	nextID int
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, now: time.Now}
}

func (r *MemoryRepository) Append(lead model.Lead) model.Lead {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead.ID = r.nextID
	r.nextID++
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = r.now().UTC()
	}
	r.leads = append(r.leads, lead)
	return lead
}

func (r *MemoryRepository) List() []model.Lead {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Lead, len(r.leads))
	copy(out, r.leads)
	return out
}
