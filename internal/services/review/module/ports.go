package module

import dom "modgate/internal/services/review/domain"

// Ports holds the ports exposed by the review module
type Ports struct {
	Review dom.ReviewPort
}
