package domain

import (
	"modgate/internal/core/moderate"
	contentdom "modgate/internal/services/content/domain"
	ledgerdom "modgate/internal/services/ledger/domain"
	workerdom "modgate/internal/services/modworker/domain"
	notifydom "modgate/internal/services/notify/domain"
)

// Ports are the collaborator ports the intake service is wired with
type Ports struct {
	Ledger    ledgerdom.LedgerPort
	Content   contentdom.WriterPort
	Reader    contentdom.ReaderPort
	Notify    notifydom.NotifierPort
	Jobs      workerdom.EnqueuePort
	Moderator *moderate.Moderator
}
