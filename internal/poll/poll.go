package poll

import (
	"strings"
	"time"
)

// User identifies a chat platform user.
type User struct {
	ID   string
	Name string
}

// Mention returns the platform markup that pings the user.
func (u User) Mention() string {
	return "<@" + u.ID + ">"
}

// Game is one option of a poll.
type Game struct {
	Name string
	Icon string
}

// Line returns the game as it appears in a rendered poll.
func (g Game) Line() string {
	return g.Icon + " " + g.Name
}

// UpcomingPoll is a poll a user is still filling in over direct messages.
type UpcomingPoll struct {
	Author    User
	ChannelID string
	Games     []Game
	StartedAt time.Time
	UpdatedAt time.Time
}

// Message is an inbound direct message.
type Message struct {
	ID        string
	ChannelID string
	Author    User
	Content   string
}

// PostedPoll is a finished poll as it was published.
type PostedPoll struct {
	ID        int64
	Author    User
	ChannelID string
	MessageID string
	Games     []Game
	PostedAt  time.Time
}

func (p *UpcomingPoll) usedIcons() map[string]struct{} {
	used := make(map[string]struct{}, len(p.Games))
	for _, g := range p.Games {
		used[g.Icon] = struct{}{}
	}
	return used
}

// AddGame appends a game with the next free icon.
// The poll is left unchanged when no icon is left.
func (p *UpcomingPoll) AddGame(name string) (Game, error) {
	icon, err := AllocateIcon(p.usedIcons())
	if err != nil {
		return Game{}, err
	}
	g := Game{Name: name, Icon: icon}
	p.Games = append(p.Games, g)
	return g, nil
}

// Reactions returns the icons to react with, in option order.
func (p *UpcomingPoll) Reactions() []string {
	out := make([]string, len(p.Games))
	for i, g := range p.Games {
		out[i] = g.Icon
	}
	return out
}

// GameNames is used for logging.
func (p *UpcomingPoll) GameNames() []string {
	out := make([]string, len(p.Games))
	for i, g := range p.Games {
		out[i] = g.Name
	}
	return out
}

func (p *UpcomingPoll) clone() UpcomingPoll {
	c := *p
	c.Games = append([]Game(nil), p.Games...)
	return c
}

// IsDone reports whether a direct message finishes the poll.
func IsDone(content string) bool {
	return strings.EqualFold(strings.TrimSpace(content), "done")
}
