package budget

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/theirongolddev/bcalc/internal/storage"
)

// StorageKey is the single key the whole collection is stored under.
const StorageKey = "budgets"

// Store owns the budget collection. It is not safe for concurrent use; the
// application has exactly one caller.
type Store struct {
	kv      storage.KV
	key     string
	logger  *log.Logger
	newID   func() string
	budgets []Budget
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets where load warnings go. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		s.logger = l
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithIDFunc overrides id generation.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore creates a store over kv and loads the persisted collection.
func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    StorageKey,
		logger: log.Default(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

// Load re-reads the persisted collection. Missing or malformed data gives
// an empty collection; Load never fails.
func (s *Store) Load() []Budget {
	s.budgets = nil

	data, err := s.kv.Get(s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Printf("budget store: %v, starting empty", err)
		}
		return s.List()
	}

	var loaded []Budget
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Printf("budget store: malformed %q data (%v), starting empty", s.key, err)
		return s.List()
	}

	kept := loaded[:0]
	for _, b := range loaded {
		if b.ID == "" {
			b.ID = s.newID()
		}
		if b.Expenses == nil {
			b.Expenses = []Expense{}
		}
		// The stored total is derived data; a hand-edited file may disagree.
		b.Total = Sum(b.Expenses)
		if !TotalInRange(b.Total) {
			s.logger.Printf("budget store: dropping %q, total is too large", b.Title)
			continue
		}
		kept = append(kept, b)
	}
	s.budgets = kept
	return s.List()
}

// Add validates and appends a new budget, then persists the collection.
// A *StorageError still returns the created budget: it is kept in memory.
func (s *Store) Add(title, date string, items []ExpenseInput) (Budget, error) {
	title = strings.TrimSpace(title)
	date = strings.TrimSpace(date)
	if title == "" {
		return Budget{}, &ValidationError{Field: "title"}
	}
	if date == "" {
		return Budget{}, &ValidationError{Field: "date"}
	}

	expenses := NewExpenses(items)
	total := Sum(expenses)
	if !TotalInRange(total) {
		return Budget{}, &ValidationError{Field: "expenses", Reason: "total is too large"}
	}
	b := Budget{
		ID:       s.newID(),
		Title:    title,
		Date:     date,
		Expenses: expenses,
		Total:    total,
	}

	s.budgets = append(s.budgets, b)
	if err := s.persist("add budget"); err != nil {
		return b.clone(), err
	}
	return b.clone(), nil
}

// List returns a copy of the collection in save order. Positions are only
// valid until the next delete.
func (s *Store) List() []Budget {
	out := make([]Budget, len(s.budgets))
	for i, b := range s.budgets {
		out[i] = b.clone()
	}
	return out
}

// Len returns the number of budgets.
func (s *Store) Len() int {
	return len(s.budgets)
}

// At returns the budget at index.
func (s *Store) At(index int) (Budget, error) {
	if index < 0 || index >= len(s.budgets) {
		return Budget{}, &IndexError{Index: index, Len: len(s.budgets)}
	}
	return s.budgets[index].clone(), nil
}

// DeleteAt removes the budget at index and persists the rest.
func (s *Store) DeleteAt(index int) error {
	if index < 0 || index >= len(s.budgets) {
		return &IndexError{Index: index, Len: len(s.budgets)}
	}
	s.budgets = append(s.budgets[:index:index], s.budgets[index+1:]...)
	return s.persist("delete budget")
}

// Get returns the budget with the given id.
func (s *Store) Get(id string) (Budget, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Budget{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.budgets[i].clone(), nil
}

// Delete removes the budget with the given id and persists the rest.
func (s *Store) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.DeleteAt(i)
}

// Lookup resolves a user reference: a 1-based position, a full id, or a
// unique id prefix. It returns the budget and its current index.
func (s *Store) Lookup(ref string) (Budget, int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Budget{}, -1, fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	// "#3" is always a position; a bare "3" is one when in range, since a
	// short id may also be all digits.
	if pos, ok := strings.CutPrefix(ref, "#"); ok {
		n, err := strconv.Atoi(pos)
		if err != nil {
			return Budget{}, -1, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		b, err := s.At(n - 1)
		if err != nil {
			return Budget{}, -1, err
		}
		return b, n - 1, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(s.budgets) {
		return s.budgets[n-1].clone(), n - 1, nil
	}

	if i := s.indexOf(ref); i >= 0 {
		return s.budgets[i].clone(), i, nil
	}

	match := -1
	for i, b := range s.budgets {
		if strings.HasPrefix(b.ID, ref) {
			if match >= 0 {
				return Budget{}, -1, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
			}
			match = i
		}
	}
	if match < 0 {
		return Budget{}, -1, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return s.budgets[match].clone(), match, nil
}

func (s *Store) indexOf(id string) int {
	for i, b := range s.budgets {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the whole collection under the store key.
func (s *Store) persist(op string) error {
	list := s.budgets
	if list == nil {
		list = []Budget{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return &StorageError{Op: op, Err: err}
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return &StorageError{Op: op, Err: err}
	}
	return nil
}
