package budget

import (
	"errors"
	"fmt"
	"io"
	"log"
	"reflect"
	"testing"

	"github.com/theirongolddev/bcalc/internal/storage"
)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

// seqIDs returns an id generator yielding id-1, id-2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T, kv storage.KV) *Store {
	t.Helper()
	return NewStore(kv, WithLogger(quietLogger()), WithIDFunc(seqIDs()))
}

func mustAdd(t *testing.T, s *Store, title string, items ...ExpenseInput) Budget {
	t.Helper()
	b, err := s.Add(title, "2024-05-01", items)
	if err != nil {
		t.Fatalf("Add(%q): %v", title, err)
	}
	return b
}

func titles(bs []Budget) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Title
	}
	return out
}

func TestAddGroceriesExample(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())

	b, err := s.Add("Groceries", "2024-05-01", []ExpenseInput{
		{Name: "Milk", Amount: "3.5"},
		{Name: "", Amount: "bad"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	want := []Expense{{Name: "Milk", Amount: 3.5}, {Name: "Unnamed", Amount: 0}}
	if !reflect.DeepEqual(b.Expenses, want) {
		t.Errorf("Expenses = %+v, want %+v", b.Expenses, want)
	}
	if b.Total != 3.5 {
		t.Errorf("Total = %v, want 3.5", b.Total)
	}
	if b.ID == "" {
		t.Error("ID is empty")
	}
}

func TestAddTotalMatchesCoercedSum(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())

	cases := [][]ExpenseInput{
		nil,
		{{Name: "a", Amount: "1.25"}},
		{{Name: "a", Amount: "10"}, {Name: "b", Amount: ""}, {Name: "c", Amount: "2.75"}},
		{{Name: "x", Amount: "abc"}, {Name: "y", Amount: "-3"}},
	}
	for i, items := range cases {
		b, err := s.Add(fmt.Sprintf("b%d", i), "2024-01-01", items)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		var want []Expense
		for _, it := range items {
			want = append(want, Expense{Name: ExpenseName(it.Name), Amount: CoerceAmount(it.Amount)})
		}
		if b.Total != Sum(want) {
			t.Errorf("case %d: Total = %v, want %v", i, b.Total, Sum(want))
		}
	}
}

func TestAddValidation(t *testing.T) {
	kv := storage.NewMemory()
	s := newTestStore(t, kv)
	mustAdd(t, s, "Existing")

	tests := []struct {
		title, date, field string
	}{
		{"", "2024-05-01", "title"},
		{"   ", "2024-05-01", "title"},
		{"Rent", "", "date"},
		{"Rent", "  ", "date"},
	}
	for _, tt := range tests {
		_, err := s.Add(tt.title, tt.date, []ExpenseInput{{Name: "x", Amount: "1"}})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Add(%q, %q) err = %v, want *ValidationError", tt.title, tt.date, err)
		}
		if ve.Field != tt.field {
			t.Errorf("Field = %q, want %q", ve.Field, tt.field)
		}
		if s.Len() != 1 {
			t.Errorf("Len = %d after failed add, want 1", s.Len())
		}
	}

	if got := NewStore(kv, WithLogger(quietLogger())).Len(); got != 1 {
		t.Errorf("persisted Len = %d, want 1", got)
	}
}

func TestAddTrimsTitleAndDate(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	b, err := s.Add("  Trip ", " 2024-06-01 ", nil)
	if err != nil {
		t.Fatal(err)
	}
	if b.Title != "Trip" || b.Date != "2024-06-01" {
		t.Errorf("got title=%q date=%q", b.Title, b.Date)
	}
	if b.Expenses == nil {
		t.Error("Expenses should be an empty slice, not nil")
	}
}

func TestDeleteAtPreservesOrder(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	for _, title := range []string{"a", "b", "c", "d"} {
		mustAdd(t, s, title)
	}

	if err := s.DeleteAt(1); err != nil {
		t.Fatalf("DeleteAt: %v", err)
	}

	got := titles(s.List())
	want := []string{"a", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
}

func TestIndexErrors(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	mustAdd(t, s, "only")

	for _, idx := range []int{-1, 1, 5} {
		var ie *IndexError
		if err := s.DeleteAt(idx); !errors.As(err, &ie) {
			t.Errorf("DeleteAt(%d) err = %v, want *IndexError", idx, err)
		}
		if _, err := s.At(idx); !errors.As(err, &ie) {
			t.Errorf("At(%d) err = %v, want *IndexError", idx, err)
		}
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

func TestGetAndDeleteByID(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")

	got, err := s.Get(b.ID)
	if err != nil || got.Title != "b" {
		t.Fatalf("Get(%s) = %+v, %v", b.ID, got, err)
	}

	if err := s.Delete(a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get deleted = %v, want ErrNotFound", err)
	}
	if err := s.Delete(a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete = %v, want ErrNotFound", err)
	}

	// b moved from index 1 to 0 but its id still finds it.
	got, err = s.Get(b.ID)
	if err != nil || got.Title != "b" {
		t.Fatalf("Get after shift = %+v, %v", got, err)
	}
}

func TestRoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	s := newTestStore(t, kv)
	mustAdd(t, s, "a", ExpenseInput{Name: "Milk", Amount: "3.5"})
	mustAdd(t, s, "b", ExpenseInput{Name: "", Amount: "2"}, ExpenseInput{Name: "Tea", Amount: "1.25"})
	mustAdd(t, s, "c")
	if err := s.DeleteAt(0); err != nil {
		t.Fatal(err)
	}
	before := s.List()

	fresh := NewStore(kv, WithLogger(quietLogger()))
	if after := fresh.List(); !reflect.DeepEqual(before, after) {
		t.Fatalf("round trip mismatch:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestRoundTripSQLite(t *testing.T) {
	dir := t.TempDir()
	kv, err := storage.Open(storage.BackendSQLite, dir)
	if err != nil {
		t.Fatal(err)
	}
	s := NewStore(kv, WithLogger(quietLogger()))
	mustAdd(t, s, "Groceries", ExpenseInput{Name: "Milk", Amount: "3.5"})
	before := s.List()
	_ = kv.Close()

	kv, err = storage.Open(storage.BackendSQLite, dir)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = kv.Close() }()

	if after := NewStore(kv, WithLogger(quietLogger())).List(); !reflect.DeepEqual(before, after) {
		t.Fatalf("round trip mismatch:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestLoadMalformedIsEmpty(t *testing.T) {
	for _, raw := range []string{"{not json", `{"title":"x"}`, `"budgets"`} {
		kv := storage.NewMemory()
		_ = kv.Set(StorageKey, []byte(raw))
		if got := newTestStore(t, kv).Len(); got != 0 {
			t.Errorf("Load(%q) Len = %d, want 0", raw, got)
		}
	}
}

func TestLoadNullIsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	_ = kv.Set(StorageKey, []byte("null"))
	s := newTestStore(t, kv)
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
	if s.List() == nil {
		t.Fatal("List should never be nil")
	}
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	kv := storage.NewMemory()
	legacy := `[{"title":"Old","date":"2023-01-01","expenses":[{"name":"Rice","amount":4}],"total":4}]`
	_ = kv.Set(StorageKey, []byte(legacy))

	s := newTestStore(t, kv)
	b, err := s.At(0)
	if err != nil {
		t.Fatal(err)
	}
	if b.ID != "id-1" {
		t.Errorf("ID = %q, want id-1", b.ID)
	}
	if b.Total != 4 || b.Expenses[0].Name != "Rice" {
		t.Errorf("loaded %+v", b)
	}
}

func TestLoadRecomputesTotal(t *testing.T) {
	kv := storage.NewMemory()
	edited := `[{"id":"a","title":"Edited","date":"2023-01-01","expenses":[{"name":"Rice","amount":4},{"name":"Oil","amount":2.5}],"total":99},` +
		`{"id":"b","title":"Huge","date":"2023-01-02","expenses":[{"name":"x","amount":1e308},{"name":"y","amount":1e308}],"total":0}]`
	_ = kv.Set(StorageKey, []byte(edited))

	s := newTestStore(t, kv)
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (overflowing budget dropped)", s.Len())
	}
	b, _ := s.At(0)
	if b.Total != 6.5 {
		t.Errorf("Total = %v, want 6.5", b.Total)
	}

	// The next write succeeds and carries the corrected total.
	mustAdd(t, s, "next", ExpenseInput{Name: "z", Amount: "1"})
	reloaded, _ := newTestStore(t, kv).At(0)
	if reloaded.Total != 6.5 {
		t.Errorf("persisted Total = %v, want 6.5", reloaded.Total)
	}
}

func TestAddRejectsOverflowingTotal(t *testing.T) {
	kv := storage.NewMemory()
	s := newTestStore(t, kv)

	_, err := s.Add("Sum", "2024-05-01", []ExpenseInput{{Name: "a", Amount: "1e308"}, {Name: "b", Amount: "1e308"}})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "expenses" {
		t.Fatalf("err = %v, want *ValidationError on expenses", err)
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}

	// Out-of-range single amounts coerce to 0 rather than failing.
	b := mustAdd(t, s, "Huge", ExpenseInput{Name: "x", Amount: "1e400"}, ExpenseInput{Name: "y", Amount: "2"})
	if b.Total != 2 {
		t.Errorf("Total = %v, want 2", b.Total)
	}

	mustAdd(t, s, "Normal", ExpenseInput{Name: "Milk", Amount: "3.5"})
	if got := newTestStore(t, kv).Len(); got != 2 {
		t.Fatalf("persisted Len = %d, want 2", got)
	}
}

func TestStorageErrorKeepsMemoryAhead(t *testing.T) {
	kv := storage.WithQuota(storage.NewMemory(), 200)
	s := newTestStore(t, kv)
	mustAdd(t, s, "small")

	big := make([]ExpenseInput, 20)
	for i := range big {
		big[i] = ExpenseInput{Name: fmt.Sprintf("item-%02d", i), Amount: "1"}
	}
	b, err := s.Add("big", "2024-05-01", big)

	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StorageError", err)
	}
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want to wrap ErrQuotaExceeded", err)
	}
	if b.Title != "big" || b.Total != 20 {
		t.Errorf("returned budget = %+v", b)
	}
	if s.Len() != 2 {
		t.Fatalf("in-memory Len = %d, want 2", s.Len())
	}
	if got := newTestStore(t, kv).Len(); got != 1 {
		t.Fatalf("persisted Len = %d, want 1", got)
	}

	// A later successful write catches storage up.
	if err := s.DeleteAt(1); err != nil {
		t.Fatalf("DeleteAt: %v", err)
	}
	if got := newTestStore(t, kv).Len(); got != 1 {
		t.Fatalf("persisted Len after catch-up = %d, want 1", got)
	}
}

func TestListReturnsCopies(t *testing.T) {
	s := newTestStore(t, storage.NewMemory())
	mustAdd(t, s, "a", ExpenseInput{Name: "x", Amount: "1"})

	list := s.List()
	list[0].Title = "changed"
	list[0].Expenses[0].Amount = 99

	b, _ := s.At(0)
	if b.Title != "a" || b.Expenses[0].Amount != 1 {
		t.Fatalf("store mutated through List copy: %+v", b)
	}
}

func TestLookup(t *testing.T) {
	ids := []string{"abc11111", "abd22222", "12345678"}
	n := 0
	s := NewStore(storage.NewMemory(), WithLogger(quietLogger()), WithIDFunc(func() string {
		id := ids[n]
		n++
		return id
	}))
	mustAdd(t, s, "first")
	mustAdd(t, s, "second")
	mustAdd(t, s, "third")

	tests := []struct {
		ref     string
		want    string
		wantErr error
	}{
		{"1", "first", nil},
		{"#3", "third", nil},
		{"abd", "second", nil},
		{"abc11111", "first", nil},
		{"1234", "third", nil},
		{"12345678", "third", nil},
		{"ab", "", ErrAmbiguous},
		{"zzz", "", ErrNotFound},
		{"", "", ErrNotFound},
	}
	for _, tt := range tests {
		b, _, err := s.Lookup(tt.ref)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Lookup(%q) err = %v, want %v", tt.ref, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Lookup(%q): %v", tt.ref, err)
			continue
		}
		if b.Title != tt.want {
			t.Errorf("Lookup(%q) = %q, want %q", tt.ref, b.Title, tt.want)
		}
	}

	var ie *IndexError
	if _, _, err := s.Lookup("#9"); !errors.As(err, &ie) {
		t.Errorf("Lookup(#9) err = %v, want *IndexError", err)
	}
}
