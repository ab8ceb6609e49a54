package domain

import (
	"modgate/internal/core/moderate"
	contentdom "modgate/internal/services/content/domain"
	ledgerdom "modgate/internal/services/ledger/domain"
	notifydom "modgate/internal/services/notify/domain"
)

// Ports are the collaborator ports the worker is wired with
type Ports struct {
	Ledger    ledgerdom.LedgerPort
	Content   contentdom.WriterPort
	Notify    notifydom.NotifierPort
	Moderator *moderate.Moderator
}
