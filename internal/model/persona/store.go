package persona

// Store exposes persona retrieval for the chat controller and HTTP handlers.
type Store interface {
	List() []Persona
	FindByID(id string) (Persona, bool)
	Names() []string
}

// MemoryStore implements Store with an in-memory slice. The roster never
// changes after startup, so no locking is needed.
type MemoryStore struct {
	items []Persona
}

// NewMemoryStore returns a MemoryStore holding the supplied personas.
func NewMemoryStore(items []Persona) *MemoryStore {
	return &MemoryStore{items: append([]Persona(nil), items...)}
}

// List returns the personas in roster order.
func (s *MemoryStore) List() []Persona {
	return append([]Persona(nil), s.items...)
}

// FindByID looks up a persona by identifier.
func (s *MemoryStore) FindByID(id string) (Persona, bool) {
	for _, item := range s.items {
		if item.ID() == id {
			return item, true
		}
	}
	return Persona{}, false
}

// Names returns the persona names in roster order, for selection UIs.
// Empty when the roster is empty.
func (s *MemoryStore) Names() []string {
	names := make([]string, 0, len(s.items))
	for _, item := range s.items {
		names = append(names, item.Name)
	}
	return names
}
