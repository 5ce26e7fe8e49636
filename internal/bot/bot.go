package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"nuclight.org/dalbozz/internal/poll"
)

// Polls is the part of poll.Registry the bot drives.
type Polls interface {
	Get(userID string) (poll.UpcomingPoll, bool)
	StartNew(ctx context.Context, user poll.User, channelID string) (*poll.StartResult, error)
	HandlePrivateMessage(ctx context.Context, msg poll.Message) error
}

type Bot struct {
	session   *discordgo.Session
	messenger Messenger
	polls     Polls
	guildID   string
	logger    *slog.Logger

	registered []*discordgo.ApplicationCommand
}

// NewSession creates a discordgo session with the intents the bot needs.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
	return s, nil
}

func New(session *discordgo.Session, messenger Messenger, polls Polls, guildID string, logger *slog.Logger) *Bot {
	return &Bot{
		session:   session,
		messenger: messenger,
		polls:     polls,
		guildID:   guildID,
		logger:    logger,
	}
}

func (b *Bot) RegisterHandlers() {
	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleMessageCreate)
	b.session.AddHandler(b.handleInteractionCreate)
}

// Start opens the gateway connection and registers slash commands.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	if err := b.RegisterCommands(); err != nil {
		b.session.Close()
		return err
	}
	b.logger.Info("bot started", "commands", len(b.registered))
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) handleReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("connected to gateway",
		"user_id", r.User.ID,
		"username", r.User.Username,
		"guilds", len(r.Guilds),
	)
}

func userFromDiscord(u *discordgo.User) poll.User {
	return poll.User{ID: u.ID, Name: u.Username}
}
