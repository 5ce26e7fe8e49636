package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"nuclight.org/dalbozz/internal/poll"
)

// Messenger is everything the bot sends to Discord outside of interaction responses.
type Messenger interface {
	poll.Gateway
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
}

// Gateway implements Messenger on top of a discordgo session.
type Gateway struct {
	session *discordgo.Session
}

func NewGateway(session *discordgo.Session) *Gateway {
	return &Gateway{session: session}
}

// SendChannelMessage posts text and then adds reactions one by one, in order.
// The message ID is returned even when a reaction fails.
func (g *Gateway) SendChannelMessage(ctx context.Context, channelID, text string, reactions []string) (string, error) {
	msg, err := g.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("send message to channel %s: %w", channelID, err)
	}
	for _, emoji := range reactions {
		if err := g.AddReaction(ctx, channelID, msg.ID, emoji); err != nil {
			return msg.ID, err
		}
	}
	return msg.ID, nil
}

func (g *Gateway) SendDirectMessage(ctx context.Context, userID, text string) error {
	ch, err := g.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("open direct channel with %s: %w", userID, err)
	}
	if _, err := g.session.ChannelMessageSend(ch.ID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send direct message to %s: %w", userID, err)
	}
	return nil
}

func (g *Gateway) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := g.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete message %s: %w", messageID, err)
	}
	return nil
}

func (g *Gateway) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := g.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("add reaction %s: %w", emoji, err)
	}
	return nil
}

var _ Messenger = (*Gateway)(nil)
