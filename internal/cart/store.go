package cart

import "sync"

// Store holds the lines of one browsing session. All methods are safe for concurrent
// use; every mutation is applied under the lock, so readers never observe a partial
// update. Totals are derived from the lines on each read.
type Store struct {
	mu    sync.RWMutex
	items []Item
}

func NewStore() *Store {
	return &Store{}
}

// AddToCart merges item into an existing line with the same key, capping the merged
// quantity at that line's recorded stock, or appends it as a new line. It returns a
// copy of the resulting line as it stood when the lock was released. Input is not
// validated: callers bound the quantity before adding.
func (s *Store) AddToCart(item Item) Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	for i := range s.items {
		if s.items[i].Key() != key {
			continue
		}
		q := s.items[i].Quantity + item.Quantity
		if q > s.items[i].Stock {
			q = s.items[i].Stock
		}
		s.items[i].Quantity = q
		return s.items[i]
	}
	s.items = append(s.items, item)
	return item
}

// UpdateQuantity sets the quantity of the line with key. It does not clamp; it
// reports whether a line matched.
func (s *Store) UpdateQuantity(key Key, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key() == key {
			s.items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveFromCart drops the line with key whatever its quantity and reports whether a
// line matched.
func (s *Store) RemoveFromCart(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key() == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Drain returns the current lines and empties the store in one step.
func (s *Store) Drain() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items
	s.items = nil
	return items
}

// Item returns a copy of the line with key.
func (s *Store) Item(key Key) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.Key() == key {
			return it, true
		}
	}
	return Item{}, false
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TotalItems(s.items)
}

func (s *Store) TotalPrice() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TotalPrice(s.items)
}

type Snapshot struct {
	Items      []Item `json:"items"`
	TotalItems int    `json:"totalItems"`
	TotalPrice int64  `json:"totalPrice"`
}

// Snapshot reads lines and totals under a single lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return Snapshot{
		Items:      items,
		TotalItems: TotalItems(items),
		TotalPrice: TotalPrice(items),
	}
}

// Selection sums the lines whose keys are listed. A nil keys slice selects every line.
func (s *Store) Selection(keys []Key) (count int, total int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if keys == nil {
		return len(s.items), TotalPrice(s.items)
	}

	selected := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		selected[k] = struct{}{}
	}
	for _, it := range s.items {
		if _, ok := selected[it.Key()]; ok {
			count++
			total += it.LineTotal()
		}
	}
	return count, total
}
