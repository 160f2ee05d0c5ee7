package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"go-butterflies-checkout/internal/promo"
)

// LineItem is one product entry in a cart. Items are immutable once handed
// out in a snapshot; quantity edits replace the stored row wholesale.
type LineItem struct {
	ProductID     string
	Name          string
	UnitPrice     decimal.Decimal
	OriginalPrice *decimal.Decimal
	Quantity      int
}

// Snapshot is a point-in-time copy of a cart. Mutating it never affects the
// store.
type Snapshot struct {
	Items []LineItem
	Promo *promo.Code
}

type cartState struct {
	items []LineItem
	promo *promo.Code
}

// Store owns per-session carts in memory. The single writer of the original
// UI becomes many HTTP goroutines here, so access is mutex-guarded.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*cartState
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*cartState)}
}

func (s *Store) snapshot(sessionID string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.carts[sessionID]
	if !ok {
		return Snapshot{Items: []LineItem{}}
	}
	items := make([]LineItem, len(state.items))
	copy(items, state.items)
	var code *promo.Code
	if state.promo != nil {
		c := *state.promo
		code = &c
	}
	return Snapshot{Items: items, Promo: code}
}

func (s *Store) getOrCreate(sessionID string) *cartState {
	if state, ok := s.carts[sessionID]; ok {
		return state
	}
	state := &cartState{}
	s.carts[sessionID] = state
	return state
}

func (s *Store) addItem(sessionID string, item LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.getOrCreate(sessionID)
	for i, existing := range state.items {
		if existing.ProductID == item.ProductID {
			// Same product added again: merge quantities, keep the
			// newer price snapshot.
			item.Quantity += existing.Quantity
			state.items[i] = item
			return
		}
	}
	state.items = append(state.items, item)
}

func (s *Store) updateQty(sessionID, productID string, qty int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.carts[sessionID]
	if !ok {
		return false
	}
	for i, item := range state.items {
		if item.ProductID == productID {
			item.Quantity = qty
			state.items[i] = item
			return true
		}
	}
	return false
}

// adjustQty shifts a quantity by delta and removes the row when it reaches
// zero. Returns the resulting quantity and whether the item existed.
func (s *Store) adjustQty(sessionID, productID string, delta int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.carts[sessionID]
	if !ok {
		return 0, false
	}
	for i, item := range state.items {
		if item.ProductID != productID {
			continue
		}
		item.Quantity += delta
		if item.Quantity <= 0 {
			state.items = append(state.items[:i], state.items[i+1:]...)
			return 0, true
		}
		state.items[i] = item
		return item.Quantity, true
	}
	return 0, false
}

func (s *Store) removeItem(sessionID, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.carts[sessionID]
	if !ok {
		return false
	}
	for i, item := range state.items {
		if item.ProductID == productID {
			state.items = append(state.items[:i], state.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) setPromo(sessionID string, code *promo.Code) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.getOrCreate(sessionID)
	state.promo = code
}

func (s *Store) clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
