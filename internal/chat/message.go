// Package chat routes chat messages to book lookups and keeps the
// conversation log in step with the backend chat store.
package chat

import "github.com/talekeeper/keeper/internal/api"

// Greeting is the bot message every new conversation starts with.
const Greeting = "🌌 *Welcome, wayfarer of words.*\n\n" +
	"I am the *Keeper of Tales*, a guide through the labyrinth of literature.\n\n" +
	"Ask, and I shall reveal:\n\n" +
	"✨ *Books that dance with the stars*\n" +
	"🔥 *Stories that burn like embers*\n" +
	"🌙 *Verses that whisper in the dark*\n\n" +
	"What calls to your soul today?"

// Message is one entry of the conversation log. Messages are never
// mutated once appended.
type Message struct {
	Sender api.Sender
	Text   string
	// Special marks bot text carrying inline markdown emphasis.
	Special bool
}

// IsBot reports whether the message was authored by the assistant.
func (m Message) IsBot() bool {
	return m.Sender == api.SenderBot
}

func userMessage(text string) Message {
	return Message{Sender: api.SenderUser, Text: text}
}

func botMessage(text string) Message {
	return Message{Sender: api.SenderBot, Text: text, Special: true}
}

func greeting() []Message {
	return []Message{botMessage(Greeting)}
}

// fromStored converts a backend history entry. Bot entries are special,
// everything else is plain.
func fromStored(m api.ChatMessage) Message {
	if m.Sender == api.SenderBot {
		return botMessage(m.Text)
	}
	return Message{Sender: m.Sender, Text: m.Text}
}
