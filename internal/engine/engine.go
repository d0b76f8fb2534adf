package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bozkayasalihx/roinstxs/internal/models"
	"github.com/shopspring/decimal"
)

// account is the engine's mutable per-client state. Fields are only ever
// read or written while holding that client's lock.
type account struct {
	available decimal.Decimal
	held      decimal.Decimal
	locked    bool
}

// Engine is the single authority for account and ledger mutation. One
// instance is shared by every ingestion source; Apply is safe to call
// concurrently and is linearizable per client: two records for the same
// client never execute at the same time, while records for different
// clients proceed fully in parallel.
type Engine struct {
	// mapMu protects the muMap and accounts map structure; muMap holds
	// one exclusive lock per client.
	mapMu    sync.Mutex
	muMap    map[uint16]*sync.Mutex
	accounts map[uint16]*account

	// regMu protects the entries map structure.
	regMu   sync.Mutex
	entries map[uint32]*models.LedgerEntry
}

func New() *Engine {
	return &Engine{
		muMap:    make(map[uint16]*sync.Mutex),
		accounts: make(map[uint16]*account),
		entries:  make(map[uint32]*models.LedgerEntry),
	}
}

// clientLock returns the mutex serializing all mutation for one client,
// creating it on first sight of the client id.
func (e *Engine) clientLock(clientID uint16) *sync.Mutex {
	e.mapMu.Lock()
	defer e.mapMu.Unlock()

	if _, exists := e.muMap[clientID]; !exists {
		e.muMap[clientID] = &sync.Mutex{}
	}
	return e.muMap[clientID]
}

// acct fetches the account for a client, creating it when create is set.
// Callers must already hold the client's lock; mapMu here only guards the
// map structure itself.
func (e *Engine) acct(clientID uint16, create bool) *account {
	e.mapMu.Lock()
	defer e.mapMu.Unlock()

	a, exists := e.accounts[clientID]
	if !exists && create {
		a = &account{
			available: decimal.Zero,
			held:      decimal.Zero,
		}
		e.accounts[clientID] = a
	}
	return a
}

// lookupEntry fetches a ledger entry by transaction id. The returned
// pointer's immutable fields (TxID, ClientID, Kind, Amount) may be read
// freely; Status is only touched under the owning client's lock.
func (e *Engine) lookupEntry(txID uint32) *models.LedgerEntry {
	e.regMu.Lock()
	defer e.regMu.Unlock()
	return e.entries[txID]
}

// claimTx records a ledger entry for a new deposit or withdrawal,
// failing if the transaction id was ever seen before. Transaction ids
// are global, so the claim is atomic across all clients.
func (e *Engine) claimTx(entry *models.LedgerEntry) error {
	e.regMu.Lock()
	defer e.regMu.Unlock()

	if _, exists := e.entries[entry.TxID]; exists {
		return fmt.Errorf("tx %d: %w", entry.TxID, ErrDuplicateTx)
	}
	e.entries[entry.TxID] = entry
	return nil
}

// Apply runs one record through the state machine. It either fully
// applies the record or leaves all state exactly as it was, reporting
// why. Rejections never poison later records.
func (e *Engine) Apply(rec models.Record) error {
	mu := e.clientLock(rec.ClientID)
	mu.Lock()
	defer mu.Unlock()

	switch rec.Kind {
	case models.KindDeposit:
		return e.deposit(rec)
	case models.KindWithdrawal:
		return e.withdraw(rec)
	case models.KindDispute:
		return e.dispute(rec)
	case models.KindResolve:
		return e.resolve(rec)
	case models.KindChargeback:
		return e.chargeback(rec)
	default:
		return fmt.Errorf("kind %d: %w", rec.Kind, ErrUnknownKind)
	}
}

func (e *Engine) deposit(rec models.Record) error {
	if rec.Amount.Cmp(decimal.Zero) <= 0 {
		return fmt.Errorf("deposit tx %d: %w", rec.TxID, ErrInvalidAmount)
	}

	// Validate against the existing account before creating anything, so
	// a rejected deposit leaves no trace.
	if a := e.acct(rec.ClientID, false); a != nil && a.locked {
		return fmt.Errorf("deposit tx %d client %d: %w", rec.TxID, rec.ClientID, ErrAccountLocked)
	}

	// The claim is the last check; past it nothing can fail.
	if err := e.claimTx(&models.LedgerEntry{
		TxID:     rec.TxID,
		ClientID: rec.ClientID,
		Kind:     models.KindDeposit,
		Amount:   rec.Amount,
		Status:   models.StatusNormal,
	}); err != nil {
		return err
	}

	a := e.acct(rec.ClientID, true)
	a.available = a.available.Add(rec.Amount)
	return nil
}

func (e *Engine) withdraw(rec models.Record) error {
	if rec.Amount.Cmp(decimal.Zero) <= 0 {
		return fmt.Errorf("withdrawal tx %d: %w", rec.TxID, ErrInvalidAmount)
	}

	a := e.acct(rec.ClientID, false)
	if a == nil {
		return fmt.Errorf("withdrawal tx %d client %d: %w", rec.TxID, rec.ClientID, ErrUnknownAccount)
	}
	if a.locked {
		return fmt.Errorf("withdrawal tx %d client %d: %w", rec.TxID, rec.ClientID, ErrAccountLocked)
	}
	if a.available.Cmp(rec.Amount) < 0 {
		return fmt.Errorf("withdrawal tx %d client %d: %w", rec.TxID, rec.ClientID, ErrInsufficientFunds)
	}

	if err := e.claimTx(&models.LedgerEntry{
		TxID:     rec.TxID,
		ClientID: rec.ClientID,
		Kind:     models.KindWithdrawal,
		Amount:   rec.Amount,
		Status:   models.StatusNormal,
	}); err != nil {
		return err
	}

	a.available = a.available.Sub(rec.Amount)
	return nil
}

// checkRef validates a dispute-family reference and hands back the entry
// and account, both safe to mutate because the caller holds the client's
// lock and the entry is confirmed to belong to that client.
func (e *Engine) checkRef(rec models.Record, want models.EntryStatus) (*models.LedgerEntry, *account, error) {
	entry := e.lookupEntry(rec.TxID)
	if entry == nil {
		return nil, nil, fmt.Errorf("%s tx %d: %w", rec.Kind, rec.TxID, ErrTxNotFound)
	}
	if entry.ClientID != rec.ClientID {
		return nil, nil, fmt.Errorf("%s tx %d client %d: %w", rec.Kind, rec.TxID, rec.ClientID, ErrClientMismatch)
	}

	// The entry exists for this client, so the account must too.
	a := e.acct(rec.ClientID, false)
	if a.locked {
		return nil, nil, fmt.Errorf("%s tx %d client %d: %w", rec.Kind, rec.TxID, rec.ClientID, ErrAccountLocked)
	}
	if entry.Status != want {
		return nil, nil, fmt.Errorf("%s tx %d status %s: %w", rec.Kind, rec.TxID, entry.Status, ErrStatusMismatch)
	}
	return entry, a, nil
}

// dispute freezes the contested amount. For a deposit the funds move
// from available to held with total unchanged. For a withdrawal the
// money already left the account, so the contested claim is staked into
// held and total rises by that amount; available is untouched.
func (e *Engine) dispute(rec models.Record) error {
	entry, a, err := e.checkRef(rec, models.StatusNormal)
	if err != nil {
		return err
	}

	if entry.Kind == models.KindDeposit {
		// Rejecting here keeps available from ever going negative when
		// the deposited funds were already withdrawn.
		if a.available.Cmp(entry.Amount) < 0 {
			return fmt.Errorf("dispute tx %d client %d: %w", rec.TxID, rec.ClientID, ErrInsufficientFunds)
		}
		a.available = a.available.Sub(entry.Amount)
	}
	a.held = a.held.Add(entry.Amount)
	entry.Status = models.StatusDisputed
	return nil
}

// resolve drops an open dispute, exactly reversing its fund movement.
func (e *Engine) resolve(rec models.Record) error {
	entry, a, err := e.checkRef(rec, models.StatusDisputed)
	if err != nil {
		return err
	}

	a.held = a.held.Sub(entry.Amount)
	if entry.Kind == models.KindDeposit {
		a.available = a.available.Add(entry.Amount)
	}
	entry.Status = models.StatusNormal
	return nil
}

// chargeback upholds an open dispute: the held amount leaves the account
// for good and the account is locked against all further mutation.
func (e *Engine) chargeback(rec models.Record) error {
	entry, a, err := e.checkRef(rec, models.StatusDisputed)
	if err != nil {
		return err
	}

	a.held = a.held.Sub(entry.Amount)
	a.locked = true
	entry.Status = models.StatusChargedBack
	return nil
}

// Snapshot copies the current state of every account ever created, in
// ascending client order. Each account is read under its own lock, so a
// row is never a torn read, though rows from different clients may
// reflect different instants under concurrent ingestion.
func (e *Engine) Snapshot() []models.AccountSnapshot {
	e.mapMu.Lock()
	ids := make([]uint16, 0, len(e.accounts))
	for id := range e.accounts {
		ids = append(ids, id)
	}
	e.mapMu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]models.AccountSnapshot, 0, len(ids))
	for _, id := range ids {
		mu := e.clientLock(id)
		mu.Lock()
		a := e.acct(id, false)
		out = append(out, models.AccountSnapshot{
			ClientID:  id,
			Available: a.available,
			Held:      a.held,
			Total:     a.available.Add(a.held),
			Locked:    a.locked,
		})
		mu.Unlock()
	}
	return out
}
