package module

import dom "modgate/internal/services/modworker/domain"

// Ports holds the ports exposed by the modworker module
type Ports struct {
	Worker dom.WorkerPort
	Jobs   dom.EnqueuePort
}
