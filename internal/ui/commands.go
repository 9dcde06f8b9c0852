package ui

import "strings"

// Command is a slash command typed into the chat input.
type Command int

const (
	// CommandNone means the input is a message for the router.
	CommandNone Command = iota
	// CommandNew starts a new conversation.
	CommandNew
	// CommandLoad loads a stored conversation by id.
	CommandLoad
	// CommandQuit leaves the chat.
	CommandQuit
	// CommandHelp lists the commands.
	CommandHelp
)

// HelpText lists the chat commands.
const HelpText = "/new starts a new conversation · /load ID opens a stored one · /quit exits"

// ParseCommand recognizes slash commands. Unknown commands and plain text
// are returned as CommandNone so they reach the router unchanged.
func ParseCommand(input string) (Command, string) {
	text := strings.TrimSpace(input)
	if !strings.HasPrefix(text, "/") {
		return CommandNone, ""
	}
	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case "/new":
		return CommandNew, ""
	case "/load":
		return CommandLoad, arg
	case "/quit", "/exit":
		return CommandQuit, ""
	case "/help":
		return CommandHelp, ""
	}
	return CommandNone, ""
}
