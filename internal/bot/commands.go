package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"nuclight.org/dalbozz/internal/poll"
)

// CommandKind enumerates the slash commands the bot understands.
type CommandKind int

const (
	CommandUnknown CommandKind = iota
	CommandLFG
)

var commandNames = map[string]CommandKind{
	"lfg": CommandLFG,
}

// ParseCommand maps a slash command name to its kind.
func ParseCommand(name string) CommandKind {
	return commandNames[name]
}

func (k CommandKind) String() string {
	switch k {
	case CommandLFG:
		return "lfg"
	default:
		return "unknown"
	}
}

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        CommandLFG.String(),
		Description: "Start a Looking For Group poll in this channel",
	},
}

// RegisterCommands overwrites the bot's slash commands, scoped to the
// configured guild when there is one.
func (b *Bot) RegisterCommands() error {
	appID := b.session.State.User.ID
	registered, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, commands)
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	b.registered = registered
	return nil
}

// Command is a slash command invocation.
type Command struct {
	Kind      CommandKind
	Name      string
	User      poll.User
	ChannelID string
	GuildID   string
}

func (b *Bot) handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	user := i.User
	if i.Member != nil {
		user = i.Member.User
	}
	if user == nil {
		return
	}

	name := i.ApplicationCommandData().Name
	cmd := Command{
		Kind:      ParseCommand(name),
		Name:      name,
		User:      userFromDiscord(user),
		ChannelID: i.ChannelID,
		GuildID:   i.GuildID,
	}

	// Acknowledge first: starting a poll sends messages and may take longer
	// than the interaction response window.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Warn("failed to acknowledge interaction", "error", err, "command", name)
		return
	}

	reply := b.onCommand(context.Background(), cmd)
	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: reply,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		b.logger.Warn("failed to answer interaction", "error", err, "command", name)
	}
}

// onCommand runs a slash command and returns the ephemeral reply to show
// the invoking user.
func (b *Bot) onCommand(ctx context.Context, cmd Command) string {
	switch cmd.Kind {
	case CommandLFG:
		return b.startLFG(ctx, cmd)
	default:
		b.logger.Warn("unrecognized command",
			"command", cmd.Name,
			"user_id", cmd.User.ID,
			"channel_id", cmd.ChannelID,
		)
		return MsgUnknownCommand
	}
}

func (b *Bot) startLFG(ctx context.Context, cmd Command) string {
	b.logger.Info("command /lfg",
		"user_id", cmd.User.ID,
		"username", cmd.User.Name,
		"channel_id", cmd.ChannelID,
		"guild_id", cmd.GuildID,
	)

	if cmd.GuildID == "" {
		return MsgLFGServerOnly
	}

	result, err := b.polls.StartNew(ctx, cmd.User, cmd.ChannelID)
	if err != nil {
		var adapterErr *poll.AdapterError
		if errors.As(err, &adapterErr) && adapterErr.Op == poll.OpSendInstructions {
			b.logger.Warn("failed to send poll instructions", "error", err, "user_id", cmd.User.ID)
			return MsgCannotDirectMessage
		}
		b.logger.Error("failed to start poll", "error", err, "user_id", cmd.User.ID)
		return MsgFailedStartPoll
	}
	if result.Replaced != nil {
		return MsgPollRestarted
	}
	return MsgPollStarted
}
