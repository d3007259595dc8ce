package memory

import (
	"slices"
	"sync"

	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces" // interface AccountBook
	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/shopspring/decimal"
)

// MemoryAccountBook is an in-memory implementation of interfaces.AccountBook.
// The mutex only guards readers on other goroutines (e.g. a status probe);
// mutation is expected to come from a single consumer.
type MemoryAccountBook struct {
	mu          sync.RWMutex
	accounts    map[models.ClientID]models.Account
	disputables map[models.TxID]models.DisputableRecord
	liabilities decimal.Decimal
}

// NewMemoryAccountBook creates an empty book with zero liabilities.
func NewMemoryAccountBook() *MemoryAccountBook {
	return &MemoryAccountBook{
		accounts:    make(map[models.ClientID]models.Account),
		disputables: make(map[models.TxID]models.DisputableRecord),
		liabilities: decimal.Zero,
	}
}

func (m *MemoryAccountBook) GetOrCreateAccount(client models.ClientID) models.Account {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, exists := m.accounts[client]
	if !exists {
		acc = models.NewAccount(client)
		m.accounts[client] = acc
	}
	return acc
}

func (m *MemoryAccountBook) LookupAccount(client models.ClientID) (models.Account, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acc, exists := m.accounts[client]
	return acc, exists
}

func (m *MemoryAccountBook) PutAccount(account models.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts[account.ClientID] = account
}

func (m *MemoryAccountBook) LookupDisputable(tx models.TxID) (models.DisputableRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.disputables[tx]
	return rec, exists
}

func (m *MemoryAccountBook) RecordDisputable(tx models.TxID, client models.ClientID, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.disputables[tx]; exists {
		return interfaces.ErrRecordExists
	}
	m.disputables[tx] = models.DisputableRecord{
		TxID:     tx,
		ClientID: client,
		Amount:   amount,
		State:    models.Clean,
	}
	return nil
}

func (m *MemoryAccountBook) TransitionDispute(tx models.TxID, from []models.DisputeState, to models.DisputeState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, exists := m.disputables[tx]
	if !exists {
		return interfaces.ErrRecordNotFound
	}
	if !slices.Contains(from, rec.State) {
		return interfaces.ErrIllegalTransition
	}
	rec.State = to
	m.disputables[tx] = rec
	return nil
}

func (m *MemoryAccountBook) AdjustLiabilities(delta decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.liabilities = m.liabilities.Add(delta)
}

func (m *MemoryAccountBook) Liabilities() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.liabilities
}

// Accounts returns a copy of all accounts sorted by client id so external
// code can't modify internal state.
func (m *MemoryAccountBook) Accounts() []models.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()

	copied := make([]models.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		copied = append(copied, acc)
	}
	slices.SortFunc(copied, func(a, b models.Account) int {
		return int(a.ClientID) - int(b.ClientID)
	})
	return copied
}

// Disputables returns a copy of every disputable record sorted by tx id.
// Useful for testing and debugging.
func (m *MemoryAccountBook) Disputables() []models.DisputableRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	copied := make([]models.DisputableRecord, 0, len(m.disputables))
	for _, rec := range m.disputables {
		copied = append(copied, rec)
	}
	slices.SortFunc(copied, func(a, b models.DisputableRecord) int {
		switch {
		case a.TxID < b.TxID:
			return -1
		case a.TxID > b.TxID:
			return 1
		}
		return 0
	})
	return copied
}

// Compile-time check: ensure MemoryAccountBook implements AccountBook interface
var _ interfaces.AccountBook = (*MemoryAccountBook)(nil)
