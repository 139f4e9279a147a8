// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// SnapshotVersion is the current version of the snapshot document layout.
const SnapshotVersion = 1

// Snapshot is the persisted form of a ledger.
// It is plain JSON so any key-value or document store can hold it.
type Snapshot struct {
	Version      int            `json:"version"`
	Currency     string         `json:"currency"`
	Accounts     []*Account     `json:"accounts"`
	Transactions []*Transaction `json:"transactions"`
	Categories   []*Category    `json:"categories"`
	SavedAt      time.Time      `json:"savedAt"`
}

// Backup describes a snapshot stored in the backup object store.
type Backup struct {
	Key       string
	Size      int64
	CreatedAt time.Time
}
