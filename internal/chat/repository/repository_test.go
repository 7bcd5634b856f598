package repository

import (
	"path/filepath"
	"testing"
	"time"

	chatdomain "teamdigest-backend/internal/chat/domain"
	"teamdigest-backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&chatdomain.MonitoredConversation{},
		&chatdomain.CachedMessage{},
		&chatdomain.Summary{},
	))
	return db
}

func strPtr(s string) *string { return &s }

func newMessage(id, convID string, created time.Time) *chatdomain.CachedMessage {
	return &chatdomain.CachedMessage{
		ID:             id,
		ConversationID: convID,
		AuthorName:     strPtr("Alice"),
		Body:           strPtr("hello"),
		CreatedTime:    created,
	}
}

func TestMessageSave_IdempotentInsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	msg := newMessage("m1", "conv-1", time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC))

	inserted, err := repo.Save(msg)
	require.NoError(t, err)
	assert.True(t, inserted)

	// Second insert with the same remote id: silent no-op, no error.
	dup := newMessage("m1", "conv-1", time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC))
	inserted, err = repo.Save(dup)
	require.NoError(t, err)
	assert.False(t, inserted)

	var count int64
	require.NoError(t, db.Model(&chatdomain.CachedMessage{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMessageGetMessages_SinceIsStrictlyAfter(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	t1 := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	_, err := repo.Save(newMessage("m1", "conv-1", t1))
	require.NoError(t, err)
	_, err = repo.Save(newMessage("m2", "conv-1", t2))
	require.NoError(t, err)

	all, err := repo.GetMessages("conv-1", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "m1", all[0].ID)

	// since == t1 must exclude the message created exactly at t1.
	after, err := repo.GetMessages("conv-1", &t1)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "m2", after[0].ID)
}

func TestMessageGetMessagesInRange_InclusiveDayBoundaries(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	_, err := repo.Save(newMessage("at-start", "conv-1", start))
	require.NoError(t, err)
	_, err = repo.Save(newMessage("at-end", "conv-1", time.Date(2025, 3, 5, 23, 59, 59, 0, time.UTC)))
	require.NoError(t, err)
	_, err = repo.Save(newMessage("before", "conv-1", start.Add(-time.Second)))
	require.NoError(t, err)
	_, err = repo.Save(newMessage("after", "conv-1", time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	messages, err := repo.GetMessagesInRange("conv-1", start, end)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "at-start", messages[0].ID)
	assert.Equal(t, "at-end", messages[1].ID)
}

func TestMessageLatestMessageTime(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	latest, err := repo.LatestMessageTime("conv-1")
	require.NoError(t, err)
	assert.Nil(t, latest)

	t1 := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(2 * time.Hour)
	_, err = repo.Save(newMessage("m1", "conv-1", t2))
	require.NoError(t, err)
	_, err = repo.Save(newMessage("m2", "conv-1", t1))
	require.NoError(t, err)

	latest, err = repo.LatestMessageTime("conv-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.True(t, latest.Equal(t2))
}

func TestConversationUpsert_Reactivates(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepository(db)

	conv := &chatdomain.MonitoredConversation{ID: "conv-1", DisplayName: "Standup", ChatType: chatdomain.ChatTypeGroup}
	require.NoError(t, repo.Upsert(conv))

	require.NoError(t, repo.Deactivate("conv-1"))
	got, err := repo.GetByID("conv-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, chatdomain.StatusIgnored, got.Status)
	assert.False(t, got.Active())

	// Re-registration updates the name and flips it back to active.
	require.NoError(t, repo.Upsert(&chatdomain.MonitoredConversation{ID: "conv-1", DisplayName: "Daily Standup"}))
	got, err = repo.GetByID("conv-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Daily Standup", got.DisplayName)
	assert.Equal(t, chatdomain.StatusActive, got.Status)

	var count int64
	require.NoError(t, db.Model(&chatdomain.MonitoredConversation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConversationListActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepository(db)

	require.NoError(t, repo.Upsert(&chatdomain.MonitoredConversation{ID: "a", DisplayName: "A"}))
	require.NoError(t, repo.Upsert(&chatdomain.MonitoredConversation{ID: "b", DisplayName: "B"}))
	require.NoError(t, repo.Deactivate("a"))

	active, err := repo.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "b", active[0].ID)
}

func TestConversationGetByID_Unknown(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepository(db)

	got, err := repo.GetByID("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSummarySave_AppendOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewSummaryRepository(db)

	period := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	first, err := repo.Save(&chatdomain.Summary{ConversationID: "conv-1", PeriodStart: period, PeriodEnd: period, RawText: "v1"})
	require.NoError(t, err)
	second, err := repo.Save(&chatdomain.Summary{ConversationID: "conv-1", PeriodStart: period, PeriodEnd: period, RawText: "v2"})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	history, err := repo.ListByConversation("conv-1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSummaryGetLatest_TieBrokenByGenerationTime(t *testing.T) {
	db := newTestDB(t)
	repo := NewSummaryRepository(db)

	earlier := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	_, err := repo.Save(&chatdomain.Summary{ConversationID: "conv-1", PeriodStart: later, PeriodEnd: later, RawText: "old run", CreatedAt: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	_, err = repo.Save(&chatdomain.Summary{ConversationID: "conv-1", PeriodStart: earlier, PeriodEnd: earlier, RawText: "earlier period"})
	require.NoError(t, err)
	_, err = repo.Save(&chatdomain.Summary{ConversationID: "conv-1", PeriodStart: later, PeriodEnd: later, RawText: "new run"})
	require.NoError(t, err)

	latest, err := repo.GetLatest("conv-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	// Same period start twice: the more recently generated row wins.
	assert.Equal(t, "new run", latest.RawText)
}

func TestSummaryGetLatest_None(t *testing.T) {
	db := newTestDB(t)
	repo := NewSummaryRepository(db)

	latest, err := repo.GetLatest("conv-1")
	require.NoError(t, err)
	assert.Nil(t, latest)
}
