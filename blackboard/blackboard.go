package blackboard

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Well-known keys shared across screens
const (
	KeyOrders       = "orders"
	KeyCustomers    = "readora_customers"
	KeyCart         = "cart"
	KeyOrderCounter = "order_id_counter"
)

// Initial value of the shared order id counter
const defaultOrderCounter = 10001

// Store is a JSON-file-per-key blackboard shared by the admin screens and the
// storefront. It mirrors browser local storage semantics: reads that fail to
// parse fall back to the zero collection, writes are last-write-wins, and
// there is no cross-process locking.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a Store rooted at dir, creating the directory if needed
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blackboard directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the value stored under key into v. A missing file or malformed
// JSON is not an error: v is left untouched and the caller keeps its empty
// collection.
func (s *Store) Load(key string, v interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(key, v)
}

func (s *Store) load(key string, v interface{}) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️  Blackboard: failed to read key %q: %v", key, err)
		}
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("⚠️  Blackboard: invalid JSON under key %q, treating as empty: %v", key, err)
	}
}

// Save persists v under key, replacing whatever was there
func (s *Store) Save(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(key, v)
}

func (s *Store) save(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %q: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key, if any
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// NextOrderID returns the next sequential order id (format "ord-<counter>",
// starting at 10001) and persists the incremented counter. The
// read-increment-write is guarded within this process only; concurrent
// processes on the same directory can race, which matches the single-user
// contract of the tool.
func (s *Store) NextOrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	counter := defaultOrderCounter
	var raw string
	s.load(KeyOrderCounter, &raw)
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			counter = n
		}
	}

	if err := s.save(KeyOrderCounter, strconv.Itoa(counter+1)); err != nil {
		log.Printf("⚠️  Blackboard: failed to persist order counter: %v", err)
	}

	return fmt.Sprintf("ord-%d", counter)
}
