package module

import dom "modgate/internal/services/submit/domain"

// Ports holds the ports exposed by the submit module
type Ports struct {
	Submit dom.SubmitPort
}
