package entities

import "time"

// Pledge is one donor's current commitment, plus the trail of amounts it
// went through. Amounts are whole currency units.
type Pledge struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Organization string         `json:"organization,omitempty"`
	Amount       int64          `json:"amount"`
	Phone        string         `json:"phone"`
	Email        string         `json:"email"`
	SessionID    string         `json:"sessionId"`
	Timestamp    time.Time      `json:"timestamp"`
	History      []HistoryEntry `json:"history,omitempty"`
}

// HistoryEntry records one prior (or current) amount. History is ordered
// oldest first and only ever appended to; the pledge's top-level Amount
// always equals the newest entry's amount.
type HistoryEntry struct {
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// AppendAmount pushes a new amount onto the history and mirrors it into
// the top-level Amount.
func (p *Pledge) AppendAmount(amount int64, at time.Time) {
	p.Amount = amount
	p.History = append(p.History, HistoryEntry{
		Amount:    amount,
		Timestamp: at.UTC(),
	})
}
