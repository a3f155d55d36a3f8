package jobs

import (
	"context"
	"log"
	"time"

	"playerslog-backend/internal/repository"
)

// LedgerAuditor periodically checks that every user's stored point balance
// equals the sum of their non-reversed point transactions. A mismatch
// means a settlement write path broke atomicity; it is logged loudly and
// left for an operator, never auto-corrected.
type LedgerAuditor struct {
	repo     *repository.Repository
	interval time.Duration
	stopChan chan struct{}
}

// NewLedgerAuditor creates a new ledger audit job
func NewLedgerAuditor(repo *repository.Repository, interval time.Duration) *LedgerAuditor {
	return &LedgerAuditor{
		repo:     repo,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the audit loop
func (la *LedgerAuditor) Start() {
	log.Printf("[LedgerAudit] Starting ledger audit job (interval: %v)", la.interval)

	ticker := time.NewTicker(la.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			la.auditBalances()
		case <-la.stopChan:
			log.Println("[LedgerAudit] Stopping ledger audit job")
			return
		}
	}
}

// Stop stops the audit loop
func (la *LedgerAuditor) Stop() {
	close(la.stopChan)
}

// auditBalances compares each user's balance against the active ledger sum
func (la *LedgerAuditor) auditBalances() {
	ctx := context.Background()

	users, err := la.repo.ListUsers(ctx, "", "")
	if err != nil {
		log.Printf("[LedgerAudit] Error fetching users: %v", err)
		return
	}

	mismatches := 0
	for _, user := range users {
		active, err := la.repo.SumActivePoints(ctx, user.ID)
		if err != nil {
			log.Printf("[LedgerAudit] Error summing ledger for user %s: %v", user.ID, err)
			continue
		}
		if user.Points != active {
			mismatches++
			log.Printf("[LedgerAudit] MISMATCH user %s (%s): balance=%d, active ledger sum=%d",
				user.ID, user.Nickname, user.Points, active)
		}
	}

	if mismatches > 0 {
		log.Printf("[LedgerAudit] Audit finished with %d mismatched balances out of %d users",
			mismatches, len(users))
	}
}
