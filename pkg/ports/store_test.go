package ports_test

import (
	"context"
	"sort"
	"testing"

	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/ports"
)

// MockStore is a minimal map-backed StateStore used to exercise the contract suite itself.
type MockStore struct {
	data map[string]*domain.NavigationState
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]*domain.NavigationState)}
}

func (m *MockStore) Save(ctx context.Context, sessionID string, state *domain.NavigationState) error {
	m.data[sessionID] = state.Snapshot()
	return nil
}

func (m *MockStore) Load(ctx context.Context, sessionID string) (*domain.NavigationState, error) {
	state, ok := m.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state.Snapshot(), nil
}

func (m *MockStore) Delete(ctx context.Context, sessionID string) error {
	delete(m.data, sessionID)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func TestStateStore_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, NewMockStore())
}
