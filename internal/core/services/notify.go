package services

import (
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/logger"
)

// notify sends a transient notification if a notifier is configured.
func notify(n driven.Notifier, level domain.NotificationLevel, message string) {
	logger.Debug("notify [%s]: %s", level, message)
	if n == nil {
		return
	}
	n.Notify(domain.Notification{Level: level, Message: message})
}
