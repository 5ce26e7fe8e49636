package bot

// Replies to slash commands (ephemeral)
const (
	MsgPollStarted         = "Check your direct messages to add games to the poll."
	MsgPollRestarted       = "Your previous poll was discarded. Check your direct messages to add games to the new one."
	MsgLFGServerOnly       = "LFG polls can only be started from a server channel."
	MsgCannotDirectMessage = "I couldn't send you a direct message. Allow direct messages from server members and try again."
	MsgUnknownCommand      = "Unknown command."
)

// User error messages (sent by direct message)
const (
	MsgTooManyOptions = "A poll can't have more than 26 games. Reply \"done\" to post it."
)

// System error messages (internal errors, hide details from user)
const (
	MsgInternalError   = "An internal error occurred. Please try again later."
	MsgFailedStartPoll = "Couldn't start the poll. Please try again."
	MsgFailedPostPoll  = "Couldn't post the poll to the channel. Reply \"done\" to try again."
	MsgFailedAddGame   = "Couldn't add the game. Please try again."
)

// Whimsy
const (
	MsgPong      = "Pong!"
	MsgFmtWhoAmI = "You are %s (%s)."
)
