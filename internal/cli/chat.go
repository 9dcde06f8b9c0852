package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/talekeeper/keeper/internal/chat"
	"github.com/talekeeper/keeper/internal/intent"
	"github.com/talekeeper/keeper/internal/ui"
)

// flushTimeout bounds the wait for queued saves before a command exits.
const flushTimeout = 10 * time.Second

// answerWidth is the wrap width for replies printed outside the chat screen.
const answerWidth = 80

func newChatCmd() *cobra.Command {
	var chatID string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the Keeper of Tales",
		Long: `Open the chat screen. Type a question and press Enter.

Commands: /new starts a new conversation, /load ID opens a stored one,
/quit leaves. Without a terminal, lines are read from stdin and each reply
is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := requireDeps()
			if err != nil {
				return err
			}
			router, err := d.NewRouter()
			if err != nil {
				return err
			}
			defer closeRouter(router, d)

			ctx := cmd.Context()
			if chatID != "" {
				if err := router.Load(ctx, chatID); err != nil {
					return err
				}
			}

			if d.Headless.IsHeadless() {
				return runHeadlessChat(ctx, router, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return ui.RunChat(ctx, router, d.Theme)
		},
	}
	cmd.Flags().StringVar(&chatID, "id", "", "open the stored conversation with this id")
	return cmd
}

// runHeadlessChat answers one line of in at a time until EOF or /quit.
func runHeadlessChat(ctx context.Context, router *chat.Router, in io.Reader, out io.Writer) error {
	for _, msg := range router.Messages() {
		printMessage(out, msg)
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		command, arg := ui.ParseCommand(line)
		switch command {
		case ui.CommandQuit:
			return nil
		case ui.CommandHelp:
			_, _ = fmt.Fprintln(out, ui.HelpText)
		case ui.CommandNew:
			router.NewConversation()
			for _, msg := range router.Messages() {
				printMessage(out, msg)
			}
		case ui.CommandLoad:
			if err := router.Load(ctx, arg); err != nil {
				_, _ = fmt.Fprintf(out, "Could not load conversation: %v\n", err)
				continue
			}
			for _, msg := range router.Messages() {
				printMessage(out, msg)
			}
		default:
			reply, err := router.Send(ctx, line)
			if err != nil {
				return err
			}
			printMessage(out, reply)
		}
	}
	return scanner.Err()
}

func printMessage(out io.Writer, msg chat.Message) {
	label := "YOU"
	if msg.IsBot() {
		label = "KEEPER OF TALES"
	}
	_, _ = fmt.Fprintf(out, "%s:\n%s\n\n", label, msg.Text)
}

// closeRouter waits a bounded time for queued saves, then stops the worker.
func closeRouter(router *chat.Router, d *Dependencies) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := router.Flush(ctx); err != nil {
		d.Logger.Warn("flush conversation", "error", err)
	}
	if err := router.Close(); err != nil {
		d.Logger.Warn("close conversation", "error", err)
	}
}

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask one question and print the answer",
		Example: `  keeper ask "books similar to Dune"
  keeper ask recommend some fantasy books`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := requireDeps()
			if err != nil {
				return err
			}
			question := strings.Join(args, " ")
			if strings.TrimSpace(question) == "" {
				return chat.ErrEmptyMessage
			}

			router, err := d.NewRouter()
			if err != nil {
				return err
			}
			defer closeRouter(router, d)

			sp := ui.NewSpinner(d.Theme, d.Headless, cmd.ErrOrStderr(), "Consulting the shelves...")
			reply, err := router.Send(cmd.Context(), question)
			sp.Stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			text := reply.Text
			if !d.Headless.IsHeadless() {
				text = strings.TrimRight(ui.NewMarkdown(answerWidth, d.Theme.NoColor).Render(text), "\n")
			}
			_, _ = fmt.Fprintln(out, text)

			if router.Persisting() {
				ctx, cancel := context.WithTimeout(cmd.Context(), flushTimeout)
				defer cancel()
				if err := router.Flush(ctx); err == nil && router.ConversationID() != "" {
					_, _ = fmt.Fprintln(out, d.Theme.Muted.Render("chat ID: "+router.ConversationID()))
				}
			}
			return nil
		},
	}
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify QUESTION...",
		Short: "Show how a question would be understood, without asking the backend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := requireDeps()
			if err != nil {
				return err
			}
			in := intent.Classify(strings.Join(args, " "), d.Vocabulary())

			lines := []string{d.Theme.KeyValue("Intent", in.Kind.String())}
			if subject := in.Subject(); subject != "" {
				lines = append(lines, d.Theme.KeyValue("Subject", subject))
			}
			if in.NeedsLookup() {
				lines = append(lines, d.Theme.KeyValue("Lookup", "yes"))
			} else {
				lines = append(lines,
					d.Theme.KeyValue("Lookup", "no"),
					d.Theme.KeyValue("Reply", in.Placeholder),
				)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.Theme.Card("Classification", strings.Join(lines, "\n")))
			return nil
		},
	}
}
