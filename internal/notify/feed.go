// Package notify keeps the admin notification bell fed with the most
// recent inbound leads. State is ephemeral by design: every fresh load
// starts with all entries read and an unread count of zero.
package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"launchsite-backend/internal/events"
	"launchsite-backend/internal/models"
)

const feedSize = 10

type Notification struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

type Feed struct {
	db *gorm.DB

	mu     sync.Mutex
	items  []Notification
	unread int
}

// NewFeed loads the initial feed and subscribes to lead insert events.
func NewFeed(db *gorm.DB, bus events.Bus) *Feed {
	f := &Feed{db: db}
	if err := f.Reload(); err != nil {
		logrus.WithError(err).Error("notify: failed to load initial notifications")
	}

	bus.Subscribe(events.TableContactForms, f.onInsert)
	return f
}

// Reload re-derives the feed from the store with every entry marked
// read, matching a fresh dashboard load.
func (f *Feed) Reload() error {
	var forms []models.ContactForm
	if err := f.db.Select("id", "full_name", "created_at").
		Order("created_at DESC").
		Limit(feedSize).
		Find(&forms).Error; err != nil {
		return err
	}

	items := make([]Notification, 0, len(forms))
	for _, form := range forms {
		items = append(items, Notification{
			ID:        form.ID,
			FullName:  form.FullName,
			CreatedAt: form.CreatedAt,
			Read:      true,
		})
	}

	f.mu.Lock()
	f.items = items
	f.unread = 0
	f.mu.Unlock()
	return nil
}

func (f *Feed) onInsert(event events.Event) {
	var form models.ContactForm
	if err := json.Unmarshal(event.Payload, &form); err != nil {
		logrus.WithError(err).Warn("notify: ignoring malformed lead event")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append([]Notification{{
		ID:        form.ID,
		FullName:  form.FullName,
		CreatedAt: form.CreatedAt,
		Read:      false,
	}}, f.items...)
	if len(f.items) > feedSize {
		f.items = f.items[:feedSize]
	}
	f.unread++
}

// Items returns a snapshot of the feed and the current unread count.
func (f *Feed) Items() ([]Notification, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]Notification, len(f.items))
	copy(items, f.items)
	return items, f.unread
}

// MarkRead marks one entry read and decrements the unread counter,
// floored at zero.
func (f *Feed) MarkRead(id uint) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.items {
		if f.items[i].ID == id && !f.items[i].Read {
			f.items[i].Read = true
			if f.unread > 0 {
				f.unread--
			}
			return
		}
	}
}
