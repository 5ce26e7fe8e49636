package poll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Gateway is the part of the chat platform the registry talks to.
// SendChannelMessage returns a non-empty messageID whenever the text was
// posted, even if adding a reaction failed afterwards.
type Gateway interface {
	SendChannelMessage(ctx context.Context, channelID, text string, reactions []string) (messageID string, err error)
	SendDirectMessage(ctx context.Context, userID, text string) error
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}

// Archive keeps a record of published polls.
type Archive interface {
	RecordPosted(ctx context.Context, p *PostedPoll) error
}

// MsgNoPollInProgress is sent to users who message the bot without a poll.
const MsgNoPollInProgress = "You aren't currently preparing any polls."

// StartResult describes the outcome of StartNew.
type StartResult struct {
	Poll     UpcomingPoll
	Replaced *UpcomingPoll // previous poll of the same user, discarded
}

// Registry tracks at most one upcoming poll per user.
type Registry struct {
	gateway Gateway
	archive Archive
	logger  *slog.Logger
	ttl     time.Duration
	now     func() time.Time

	userLocks *keyedMutex

	mu    sync.Mutex
	polls map[string]*UpcomingPoll
}

// NewRegistry creates an empty registry. archive may be nil.
// Polls untouched for longer than ttl are dropped by ReapExpired; ttl <= 0 keeps them forever.
func NewRegistry(gateway Gateway, archive Archive, logger *slog.Logger, ttl time.Duration) *Registry {
	return &Registry{
		gateway:   gateway,
		archive:   archive,
		logger:    logger,
		ttl:       ttl,
		now:       time.Now,
		userLocks: newKeyedMutex(),
		polls:     make(map[string]*UpcomingPoll),
	}
}

func (r *Registry) lookup(userID string) *UpcomingPoll {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.polls[userID]
}

func (r *Registry) store(userID string, p *UpcomingPoll) (previous *UpcomingPoll) {
	r.mu.Lock()
	defer r.mu.Unlock()
	previous = r.polls[userID]
	r.polls[userID] = p
	return previous
}

func (r *Registry) remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.polls, userID)
}

// Get returns a copy of the user's upcoming poll.
func (r *Registry) Get(userID string) (UpcomingPoll, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polls[userID]
	if !ok {
		return UpcomingPoll{}, false
	}
	return p.clone(), true
}

// Len returns the number of polls in preparation.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.polls)
}

// StartNew begins a poll for user that will be posted to channelID.
// An existing poll of the same user is replaced and returned in StartResult.Replaced.
// The poll is registered even when the announcements fail.
func (r *Registry) StartNew(ctx context.Context, user User, channelID string) (*StartResult, error) {
	unlock := r.userLocks.Lock(user.ID)
	defer unlock()

	now := r.now()
	p := &UpcomingPoll{
		Author:    user,
		ChannelID: channelID,
		StartedAt: now,
		UpdatedAt: now,
	}
	result := &StartResult{Poll: p.clone()}
	if previous := r.store(user.ID, p); previous != nil {
		replaced := previous.clone()
		result.Replaced = &replaced
		r.logger.Info("upcoming poll replaced",
			"user_id", user.ID,
			"username", user.Name,
			"games", len(previous.Games),
		)
	}

	r.logger.Info("upcoming poll started",
		"user_id", user.ID,
		"username", user.Name,
		"channel_id", channelID,
	)

	announcement, err := RenderStarted(user)
	if err != nil {
		return result, fmt.Errorf("render announcement: %w", err)
	}
	instructions, err := RenderInstructions(result.Replaced != nil)
	if err != nil {
		return result, fmt.Errorf("render instructions: %w", err)
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := r.gateway.SendChannelMessage(ctx, channelID, announcement, nil)
		return adapterError(OpAnnounce, err)
	})
	g.Go(func() error {
		return adapterError(OpSendInstructions, r.gateway.SendDirectMessage(ctx, user.ID, instructions))
	})
	return result, g.Wait()
}

// HandlePrivateMessage applies one direct message to the author's poll:
// "done" publishes it, anything else becomes the next game.
func (r *Registry) HandlePrivateMessage(ctx context.Context, msg Message) error {
	unlock := r.userLocks.Lock(msg.Author.ID)
	defer unlock()

	p := r.lookup(msg.Author.ID)
	if p == nil {
		return adapterError(OpReplyNoPoll,
			r.gateway.SendDirectMessage(ctx, msg.Author.ID, MsgNoPollInProgress))
	}

	if IsDone(msg.Content) {
		return r.post(ctx, p)
	}
	return r.addGame(ctx, p, msg)
}

func (r *Registry) post(ctx context.Context, p *UpcomingPoll) error {
	text, err := RenderFinal(p)
	if err != nil {
		return fmt.Errorf("render poll: %w", err)
	}

	messageID, err := r.gateway.SendChannelMessage(ctx, p.ChannelID, text, p.Reactions())
	if err != nil {
		if messageID == "" {
			return adapterError(OpPostPoll, err)
		}
		// The poll is in the channel already; posting again would duplicate it.
		r.logger.Warn("poll posted without all reactions", "error", err, "message_id", messageID)
	}
	r.remove(p.Author.ID)

	r.logger.Info("poll posted",
		"user_id", p.Author.ID,
		"username", p.Author.Name,
		"channel_id", p.ChannelID,
		"message_id", messageID,
		"games", p.GameNames(),
	)

	if r.archive != nil {
		posted := &PostedPoll{
			Author:    p.Author,
			ChannelID: p.ChannelID,
			MessageID: messageID,
			Games:     append([]Game(nil), p.Games...),
			PostedAt:  r.now(),
		}
		if err := r.archive.RecordPosted(ctx, posted); err != nil {
			r.logger.Error("failed to archive posted poll", "error", err, "message_id", messageID)
		}
	}
	return nil
}

func (r *Registry) addGame(ctx context.Context, p *UpcomingPoll, msg Message) error {
	r.mu.Lock()
	updatedAt := p.UpdatedAt
	g, err := p.AddGame(msg.Content)
	if err == nil {
		p.UpdatedAt = r.now()
	}
	r.mu.Unlock()
	if err != nil {
		return err
	}

	r.logger.Info("game added to poll",
		"user_id", p.Author.ID,
		"game", g.Name,
		"icon", g.Icon,
	)

	preview, err := RenderPreview(p)
	if err == nil {
		err = adapterError(OpSendPreview, r.gateway.SendDirectMessage(ctx, p.Author.ID, preview))
	} else {
		err = fmt.Errorf("render preview: %w", err)
	}
	if err != nil {
		// The user is told to send the game again, so it must not stay in the poll.
		r.mu.Lock()
		p.Games = p.Games[:len(p.Games)-1]
		p.UpdatedAt = updatedAt
		r.mu.Unlock()
		return err
	}

	if err := r.gateway.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
		// Bots may not delete other users' direct messages.
		r.logger.Warn("failed to delete game message", "error", err, "message_id", msg.ID)
	}
	return nil
}

// ReapExpired drops polls that were not touched within the TTL and
// notifies their authors. Returns the number of dropped polls.
func (r *Registry) ReapExpired(ctx context.Context) int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	var candidates []string
	for userID, p := range r.polls {
		if r.expired(p) {
			candidates = append(candidates, userID)
		}
	}
	r.mu.Unlock()

	reaped := 0
	for _, userID := range candidates {
		if r.reap(ctx, userID) {
			reaped++
		}
	}
	return reaped
}

func (r *Registry) expired(p *UpcomingPoll) bool {
	return r.now().Sub(p.UpdatedAt) > r.ttl
}

func (r *Registry) reap(ctx context.Context, userID string) bool {
	unlock := r.userLocks.Lock(userID)
	defer unlock()

	// The user may have touched or finished the poll while we waited.
	p := r.lookup(userID)
	if p == nil || !r.expired(p) {
		return false
	}
	r.remove(userID)

	r.logger.Info("upcoming poll expired",
		"user_id", userID,
		"username", p.Author.Name,
		"games", len(p.Games),
	)

	notice, err := RenderExpired(p)
	if err != nil {
		r.logger.Warn("failed to render expiry notice", "error", err)
		return true
	}
	if err := r.gateway.SendDirectMessage(ctx, userID, notice); err != nil {
		r.logger.Warn("failed to send expiry notice", "error", err, "user_id", userID)
	}
	return true
}

// RunReaper calls ReapExpired every interval until ctx is done.
func (r *Registry) RunReaper(ctx context.Context, interval time.Duration) error {
	if r.ttl <= 0 || interval <= 0 {
		r.logger.Info("poll expiry disabled")
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("poll reaper started", "ttl", r.ttl, "interval", interval)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("poll reaper stopped")
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if n := r.ReapExpired(ctx); n > 0 {
				r.logger.Info("expired polls dropped", "count", n)
			}
		}
	}
}
