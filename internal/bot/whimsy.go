package bot

import (
	"fmt"
	"strings"

	"nuclight.org/dalbozz/internal/poll"
)

// reactionTriggers pairs an emoji found in a message with the reaction it earns.
var reactionTriggers = []struct {
	trigger  string
	reaction string
}{
	{"🐔", "🥚"},
	{"🐴", "💎"},
}

// reactionsFor returns the reactions to add to a message, in trigger order.
func reactionsFor(content string) []string {
	var reactions []string
	for _, t := range reactionTriggers {
		if strings.Contains(content, t.trigger) {
			reactions = append(reactions, t.reaction)
		}
	}
	return reactions
}

// whimsyReply returns the canned answer to a channel message, if any.
func whimsyReply(content string, author poll.User) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(content)) {
	case "ping":
		return MsgPong, true
	case "whoami":
		return fmt.Sprintf(MsgFmtWhoAmI, author.Name, author.Mention()), true
	default:
		return "", false
	}
}
