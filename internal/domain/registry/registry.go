// Package registry keeps the set of open accounts in memory. A Registry is
// created by the caller at start-up and lives until the process exits; there
// is no package-level instance.
package registry

import (
	"iter"
	"slices"
	"strconv"
	"sync"

	"github.com/account-ledger/internal/domain/account"
)

// ErrAccountNotFound indicates no registered account for the customer
type ErrAccountNotFound struct {
	CustomerID int64
}

func (e ErrAccountNotFound) Error() string {
	return "account not found for customer: " + strconv.FormatInt(e.CustomerID, 10)
}

// Is implements the errors.Is interface for ErrAccountNotFound
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	// A zero CustomerID matches any ErrAccountNotFound
	return t.CustomerID == 0 || t.CustomerID == e.CustomerID
}

// ErrDuplicateAccount indicates the customer already has a registered account
type ErrDuplicateAccount struct {
	CustomerID int64
}

func (e ErrDuplicateAccount) Error() string {
	return "account already registered for customer: " + strconv.FormatInt(e.CustomerID, 10)
}

// Is implements the errors.Is interface for ErrDuplicateAccount
func (e ErrDuplicateAccount) Is(target error) bool {
	t, ok := target.(ErrDuplicateAccount)
	if !ok {
		return false
	}
	return t.CustomerID == 0 || t.CustomerID == e.CustomerID
}

// Registry indexes accounts by customer ID and remembers insertion order
type Registry struct {
	mu    sync.RWMutex
	byID  map[int64]*account.Account
	order []int64
}

// New creates an empty registry
func New() *Registry {
	return &Registry{byID: make(map[int64]*account.Account)}
}

// Add registers acc. It fails if the customer ID is already registered.
func (r *Registry) Add(acc *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := acc.CustomerID()
	if _, exists := r.byID[id]; exists {
		return ErrDuplicateAccount{CustomerID: id}
	}
	r.byID[id] = acc
	r.order = append(r.order, id)
	return nil
}

// Remove drops the account registered under customerID and returns it. The
// account itself, history included, is untouched.
func (r *Registry) Remove(customerID int64) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, exists := r.byID[customerID]
	if !exists {
		return nil, ErrAccountNotFound{CustomerID: customerID}
	}
	r.drop(customerID)
	return acc, nil
}

// RemoveAccount removes acc by reference. An account registered under the same
// customer ID but a different object is not a match.
func (r *Registry) RemoveAccount(acc *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := acc.CustomerID()
	if registered, exists := r.byID[id]; !exists || registered != acc {
		return ErrAccountNotFound{CustomerID: id}
	}
	r.drop(id)
	return nil
}

func (r *Registry) drop(customerID int64) {
	delete(r.byID, customerID)
	r.order = slices.DeleteFunc(r.order, func(id int64) bool { return id == customerID })
}

// Get looks up the account registered for customerID
func (r *Registry) Get(customerID int64) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, exists := r.byID[customerID]
	if !exists {
		return nil, ErrAccountNotFound{CustomerID: customerID}
	}
	return acc, nil
}

// Len returns the number of registered accounts
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// List yields registered accounts in insertion order. The sequence can be
// ranged over any number of times; each pass sees the accounts registered when
// it started and holds no lock while the caller's loop body runs.
func (r *Registry) List() iter.Seq[*account.Account] {
	return func(yield func(*account.Account) bool) {
		for _, acc := range r.snapshot() {
			if !yield(acc) {
				return
			}
		}
	}
}

func (r *Registry) snapshot() []*account.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*account.Account, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
