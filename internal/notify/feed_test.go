package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"launchsite-backend/internal/database"
	"launchsite-backend/internal/events"
	"launchsite-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedLead(t *testing.T, db *gorm.DB, name string, createdAt time.Time) models.ContactForm {
	t.Helper()
	form := models.ContactForm{
		CreatedAt: createdAt,
		FullName:  name,
		Email:     "lead@example.com",
		Phone:     "0501234567",
	}
	require.NoError(t, db.Create(&form).Error)
	return form
}

func publishLead(t *testing.T, bus events.Bus, form models.ContactForm) {
	t.Helper()
	event, err := events.NewInsertEvent(events.TableContactForms, form)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), event))
}

func TestFeedStartsAllRead(t *testing.T) {
	db := testDB(t)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		seedLead(t, db, fmt.Sprintf("lead %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	feed := NewFeed(db, events.NewMemoryBus())

	items, unread := feed.Items()
	require.Len(t, items, 3)
	assert.Equal(t, 0, unread)
	for _, item := range items {
		assert.True(t, item.Read)
	}
	// Newest first.
	assert.Equal(t, "lead 2", items[0].FullName)
}

func TestFeedInsertPrependsUnread(t *testing.T) {
	db := testDB(t)
	bus := events.NewMemoryBus()
	feed := NewFeed(db, bus)

	form := seedLead(t, db, "דן כהן", time.Now())
	publishLead(t, bus, form)

	items, unread := feed.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, unread)
	assert.Equal(t, "דן כהן", items[0].FullName)
	assert.False(t, items[0].Read)
}

func TestFeedCapped(t *testing.T) {
	db := testDB(t)
	bus := events.NewMemoryBus()
	feed := NewFeed(db, bus)

	for i := 0; i < 15; i++ {
		form := seedLead(t, db, fmt.Sprintf("lead %d", i), time.Now())
		publishLead(t, bus, form)
	}

	items, unread := feed.Items()
	assert.Len(t, items, 10)
	assert.Equal(t, 15, unread)
	assert.Equal(t, "lead 14", items[0].FullName)
}

func TestFeedMarkRead(t *testing.T) {
	db := testDB(t)
	bus := events.NewMemoryBus()
	feed := NewFeed(db, bus)

	form := seedLead(t, db, "דן כהן", time.Now())
	publishLead(t, bus, form)

	feed.MarkRead(form.ID)
	items, unread := feed.Items()
	assert.Equal(t, 0, unread)
	assert.True(t, items[0].Read)

	// Repeated and unknown marks never drive the counter negative.
	feed.MarkRead(form.ID)
	feed.MarkRead(9999)
	_, unread = feed.Items()
	assert.Equal(t, 0, unread)
}

func TestFeedReloadResetsUnread(t *testing.T) {
	db := testDB(t)
	bus := events.NewMemoryBus()
	feed := NewFeed(db, bus)

	form := seedLead(t, db, "דן כהן", time.Now())
	publishLead(t, bus, form)

	require.NoError(t, feed.Reload())
	items, unread := feed.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 0, unread)
	assert.True(t, items[0].Read)
}
