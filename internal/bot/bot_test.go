package bot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationsGetAndReset(t *testing.T) {
	convs := newConversations()

	conv := convs.get(42)
	assert.Equal(t, stageIdle, conv.stage)

	conv.stage = stageAddParent
	conv.parentName = "Ivan Petrov"

	// Same chat gets the same draft back.
	assert.Same(t, conv, convs.get(42))

	// A different chat gets its own draft.
	other := convs.get(43)
	assert.Equal(t, stageIdle, other.stage)
	assert.Empty(t, other.parentName)

	convs.reset(42)
	fresh := convs.get(42)
	assert.Equal(t, stageIdle, fresh.stage)
	assert.Empty(t, fresh.parentName)
}

func TestConversationsConcurrentChats(t *testing.T) {
	convs := newConversations()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			conv := convs.get(chatID)
			conv.stage = stageRegisterName
			convs.reset(chatID)
		}(i)
	}
	wg.Wait()
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "01.03.2024 16:05", formatTimestamp("2024-03-01T16:05:00Z"))
	assert.Equal(t, "2024-03-01", formatTimestamp("2024-03-01 garbage"))
	assert.Equal(t, "oops", formatTimestamp("oops"))
}
