package bot

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"nuclight.org/dalbozz/internal/poll"
)

type sentMessage struct {
	target string
	text   string
}

type reaction struct {
	messageID string
	emoji     string
}

// mockMessenger records everything the bot would send to Discord.
type mockMessenger struct {
	mu        sync.Mutex
	posts     []sentMessage
	dms       []sentMessage
	reactions []reaction
	deleted   []string

	dmErr       error
	reactionErr error
}

func (m *mockMessenger) SendChannelMessage(_ context.Context, channelID, text string, _ []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append(m.posts, sentMessage{target: channelID, text: text})
	return "reply", nil
}

func (m *mockMessenger) SendDirectMessage(_ context.Context, userID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dmErr != nil {
		return m.dmErr
	}
	m.dms = append(m.dms, sentMessage{target: userID, text: text})
	return nil
}

func (m *mockMessenger) DeleteMessage(_ context.Context, _, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, messageID)
	return nil
}

func (m *mockMessenger) AddReaction(_ context.Context, _, messageID, emoji string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reactionErr != nil {
		return m.reactionErr
	}
	m.reactions = append(m.reactions, reaction{messageID: messageID, emoji: emoji})
	return nil
}

// mockPolls stands in for poll.Registry.
type mockPolls struct {
	started    []poll.User
	messages   []poll.Message
	collecting map[string]bool

	startResult *poll.StartResult
	startErr    error
	messageErr  error
}

func (m *mockPolls) StartNew(_ context.Context, user poll.User, channelID string) (*poll.StartResult, error) {
	m.started = append(m.started, user)
	result := m.startResult
	if result == nil {
		result = &poll.StartResult{Poll: poll.UpcomingPoll{Author: user, ChannelID: channelID}}
	}
	return result, m.startErr
}

func (m *mockPolls) Get(userID string) (poll.UpcomingPoll, bool) {
	if !m.collecting[userID] {
		return poll.UpcomingPoll{}, false
	}
	return poll.UpcomingPoll{Author: poll.User{ID: userID}}, true
}

func (m *mockPolls) HandlePrivateMessage(_ context.Context, msg poll.Message) error {
	m.messages = append(m.messages, msg)
	return m.messageErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBot() (*Bot, *mockMessenger, *mockPolls) {
	messenger := &mockMessenger{}
	polls := &mockPolls{}
	return New(nil, messenger, polls, "guild-1", testLogger()), messenger, polls
}
