// Package notify sends desktop notifications for completed downloads.
package notify

import (
	"sync"

	"github.com/gen2brain/beeep"
)

//go:generate mockgen -source=notify.go -destination=../mocks/notify/mock_notifier.go -package=mock_notify

// Notifier emits a user-facing notification.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop sends notifications through the operating system's notification
// service.
type Desktop struct {
	appName  string
	initOnce sync.Once
}

// NewDesktop creates a desktop notifier for the given application name.
func NewDesktop(appName string) *Desktop {
	return &Desktop{appName: appName}
}

// Init registers the application with the notification service. It is
// idempotent; callers run it once at startup so the first notification does
// not pay the registration cost.
func (d *Desktop) Init() {
	d.initOnce.Do(func() {
		beeep.AppName = d.appName
	})
}

// Notify sends a notification.
func (d *Desktop) Notify(title, message string) error {
	d.Init()
	return beeep.Notify(title, message, "")
}
