package module

import dom "modgate/internal/services/audit/domain"

// Ports holds the ports exposed by the audit module
type Ports struct {
	Recorder dom.RecorderPort
}
