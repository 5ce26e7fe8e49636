package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"nuclight.org/dalbozz/internal/poll"
)

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	msg := poll.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Author:    userFromDiscord(m.Author),
		Content:   m.Content,
	}
	b.onMessage(context.Background(), msg, m.GuildID == "")
}

// onMessage routes a user message. Direct messages feed the author's poll
// while one is being collected. Otherwise whimsy gets the first look, and
// unanswered direct messages still reach the registry.
func (b *Bot) onMessage(ctx context.Context, msg poll.Message, direct bool) {
	b.logger.Debug("message received",
		"user_id", msg.Author.ID,
		"username", msg.Author.Name,
		"channel_id", msg.ChannelID,
		"direct", direct,
	)

	if direct {
		if _, collecting := b.polls.Get(msg.Author.ID); collecting {
			b.onPrivateMessage(ctx, msg)
			return
		}
	}
	if b.whimsy(ctx, msg) || !direct {
		return
	}
	b.onPrivateMessage(ctx, msg)
}

func (b *Bot) onPrivateMessage(ctx context.Context, msg poll.Message) {
	err := b.polls.HandlePrivateMessage(ctx, msg)
	if err == nil {
		return
	}

	err = userErrorFor(err)
	if ShouldLog(err) {
		b.logger.Error("failed to handle direct message", "error", err, "user_id", msg.Author.ID)
	}
	if sendErr := b.messenger.SendDirectMessage(ctx, msg.Author.ID, GetUserMessage(err)); sendErr != nil {
		b.logger.Warn("failed to report error to user", "error", sendErr, "user_id", msg.Author.ID)
	}
}

// whimsy adds emoji reactions and canned replies. Reports whether it replied.
func (b *Bot) whimsy(ctx context.Context, msg poll.Message) bool {
	for _, emoji := range reactionsFor(msg.Content) {
		if err := b.messenger.AddReaction(ctx, msg.ChannelID, msg.ID, emoji); err != nil {
			b.logger.Warn("failed to add reaction", "error", err, "message_id", msg.ID)
		}
	}

	reply, ok := whimsyReply(msg.Content, msg.Author)
	if !ok {
		return false
	}
	if _, err := b.messenger.SendChannelMessage(ctx, msg.ChannelID, reply, nil); err != nil {
		b.logger.Warn("failed to reply", "error", err, "channel_id", msg.ChannelID)
	}
	return true
}
