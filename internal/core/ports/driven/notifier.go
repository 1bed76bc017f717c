package driven

import "github.com/custodia-labs/docchat/internal/core/domain"

// Notifier delivers transient notifications to whatever surface is active.
// Notify must not block.
type Notifier interface {
	Notify(n domain.Notification)
}
