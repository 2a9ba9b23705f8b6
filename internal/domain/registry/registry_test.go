package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/account-ledger/internal/domain/account"
	"github.com/account-ledger/internal/domain/customer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(t *testing.T, id int64) *account.Account {
	t.Helper()
	p, err := customer.NewProfile("Customer", id, decimal.NewFromInt(1000), decimal.NewFromInt(1000))
	require.NoError(t, err)
	return account.NewAccount(p)
}

func ids(r *Registry) []int64 {
	out := []int64{}
	for acc := range r.List() {
		out = append(out, acc.CustomerID())
	}
	return out
}

func TestRegistry_Add(t *testing.T) {
	t.Run("InsertionOrder", func(t *testing.T) {
		r := New()
		for _, id := range []int64{30, 10, 20} {
			require.NoError(t, r.Add(newAccount(t, id)))
		}
		assert.Equal(t, []int64{30, 10, 20}, ids(r))
		assert.Equal(t, 3, r.Len())
	})

	t.Run("DuplicateCustomerID", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Add(newAccount(t, 1)))

		err := r.Add(newAccount(t, 1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateAccount{})
		assert.ErrorIs(t, err, ErrDuplicateAccount{CustomerID: 1})
		assert.NotErrorIs(t, err, ErrDuplicateAccount{CustomerID: 2})
		assert.Equal(t, 1, r.Len())
	})

	t.Run("ReAddAfterRemove", func(t *testing.T) {
		r := New()
		acc := newAccount(t, 1)
		require.NoError(t, r.Add(acc))
		_, err := r.Remove(1)
		require.NoError(t, err)
		assert.NoError(t, r.Add(acc))
	})
}

func TestRegistry_Remove(t *testing.T) {
	t.Run("RemoveByID", func(t *testing.T) {
		r := New()
		acc := newAccount(t, 1)
		require.NoError(t, r.Add(acc))
		require.NoError(t, r.Add(newAccount(t, 2)))

		_, err := acc.Deposit(decimal.NewFromInt(500))
		require.NoError(t, err)

		removed, err := r.Remove(1)
		require.NoError(t, err)
		assert.Same(t, acc, removed)
		assert.Equal(t, []int64{2}, ids(r))
		assert.Len(t, removed.History(), 1, "removal must not erase history")

		_, err = r.Remove(1)
		var notFound ErrAccountNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, int64(1), notFound.CustomerID)
	})

	t.Run("RemoveByReference", func(t *testing.T) {
		r := New()
		acc := newAccount(t, 1)
		require.NoError(t, r.Add(acc))

		require.NoError(t, r.RemoveAccount(acc))
		assert.ErrorIs(t, r.RemoveAccount(acc), ErrAccountNotFound{})
		assert.Empty(t, ids(r))
	})

	t.Run("RemoveByReferenceRequiresSameObject", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Add(newAccount(t, 1)))

		err := r.RemoveAccount(newAccount(t, 1))
		assert.ErrorIs(t, err, ErrAccountNotFound{CustomerID: 1})
		assert.Equal(t, 1, r.Len())
	})

	t.Run("RemoveNonMember", func(t *testing.T) {
		r := New()
		_, err := r.Remove(42)
		assert.True(t, errors.Is(err, ErrAccountNotFound{CustomerID: 42}))
	})
}

func TestRegistry_Get(t *testing.T) {
	r := New()
	acc := newAccount(t, 7)
	require.NoError(t, r.Add(acc))

	got, err := r.Get(7)
	require.NoError(t, err)
	assert.Same(t, acc, got)

	_, err = r.Get(8)
	assert.ErrorIs(t, err, ErrAccountNotFound{})
}

func TestRegistry_ListIsRestartable(t *testing.T) {
	r := New()
	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, r.Add(newAccount(t, id)))
	}

	seq := r.List()
	first := []int64{}
	for acc := range seq {
		first = append(first, acc.CustomerID())
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []int64{1, 2}, first)

	_, err := r.Remove(2)
	require.NoError(t, err)

	second := []int64{}
	for acc := range seq {
		second = append(second, acc.CustomerID())
	}
	assert.Equal(t, []int64{1, 3}, second)
}

func TestRegistry_MutationDuringIteration(t *testing.T) {
	r := New()
	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, r.Add(newAccount(t, id)))
	}

	visited := 0
	for acc := range r.List() {
		_, err := r.Remove(acc.CustomerID())
		require.NoError(t, err)
		visited++
	}
	assert.Equal(t, 3, visited)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_ConcurrentAdds(t *testing.T) {
	r := New()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 1; i <= n; i++ {
		go func(id int64) {
			defer wg.Done()
			if err := r.Add(newAccount(t, id)); err != nil {
				t.Errorf("add %d: %v", id, err)
			}
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, n, r.Len())
	assert.Len(t, ids(r), n)
}
