package module

import dom "modgate/internal/services/content/domain"

// Ports holds the ports exposed by the content module
type Ports struct {
	Writer dom.WriterPort
	Reader dom.ReaderPort
}
