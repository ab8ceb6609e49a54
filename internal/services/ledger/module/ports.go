package module

import dom "modgate/internal/services/ledger/domain"

// Ports holds the ports exposed by the ledger module
type Ports struct {
	Ledger dom.LedgerPort
}
