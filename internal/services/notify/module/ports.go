package module

import dom "modgate/internal/services/notify/domain"

// Ports holds the ports exposed by the notify module
type Ports struct {
	Notifier dom.NotifierPort
	Inbox    dom.InboxPort
}
