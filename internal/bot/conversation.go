package bot

import "sync"

// Conversation stages. Each multi-step command walks a chat through a
// linear sequence of prompts; /cancel aborts at any point and nothing is
// written before the terminal step.
type stage int

const (
	stageIdle stage = iota

	stageRegisterName
	stageRegisterSheet

	stageAddParent
	stageAddStudent
	stageAddCost

	stageDeleteParent
	stageDeleteStudent
	stageDeleteConfirm
)

// conversation is the in-memory draft of one chat's pending command.
type conversation struct {
	stage stage

	name        string
	sheetID     string
	parentName  string
	studentName string
}

// conversations tracks per-chat state. Telegram delivers one update at a
// time per chat, but different chats are handled concurrently.
type conversations struct {
	mu    sync.Mutex
	byKey map[int64]*conversation
}

func newConversations() *conversations {
	return &conversations{byKey: make(map[int64]*conversation)}
}

func (c *conversations) get(chatID int64) *conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	conv, ok := c.byKey[chatID]
	if !ok {
		conv = &conversation{}
		c.byKey[chatID] = conv
	}
	return conv
}

// reset discards the chat's draft. The abandoned draft is simply dropped;
// no rollback is needed because nothing was written.
func (c *conversations) reset(chatID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byKey, chatID)
}
