package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [doc-id]",
	Short: "Chat with a document",
	Long: `Start an interactive conversation with one document.

Commands inside the chat:
  1-3    Ask a suggested question (fresh conversations only)
  /new   Start over with an empty conversation
  /exit  Leave the chat`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

var askCmd = &cobra.Command{
	Use:   "ask [doc-id] [question...]",
	Short: "Ask a single question about a document",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAsk,
}

// Colours for the chat transcript.
var (
	promptColor = color.New(color.FgMagenta, color.Bold)
	userColor   = color.New(color.FgCyan, color.Bold)
	botColor    = color.New(color.FgWhite)
	sourceColor = color.New(color.FgHiBlack, color.Italic)
	errorColor  = color.New(color.FgRed)
	noticeColor = color.New(color.FgYellow)
)

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
}

func checkChatServices() error {
	if sessionController == nil {
		return errors.New("session service not configured")
	}
	if selection == nil {
		return errors.New("selection service not configured")
	}
	if documentRegistry == nil {
		return errors.New("document registry not configured")
	}
	return requireAuth()
}

// lookupDocument refreshes the list and finds id in it.
func lookupDocument(ctx context.Context, id int64) (domain.Document, error) {
	if err := documentRegistry.Refresh(ctx); err != nil {
		return domain.Document{}, fmt.Errorf("failed to load documents: %s", failureMessage(err))
	}
	doc, ok := documentRegistry.Get(id)
	if !ok {
		return domain.Document{}, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}
	if !doc.Selectable() {
		return domain.Document{}, fmt.Errorf("%s is not ready for chat (%s)", doc.Filename, doc.Status.Description())
	}
	return doc, nil
}

func runChat(cmd *cobra.Command, args []string) error {
	if err := checkChatServices(); err != nil {
		return err
	}
	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	doc, err := lookupDocument(ctx, id)
	if err != nil {
		return err
	}
	if err := selection.Select(doc); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if notifications != nil {
		errOut := cmd.ErrOrStderr()
		notifications.SetHandler(func(n domain.Notification) {
			printNotification(errOut, n)
		})
		defer notifications.SetHandler(nil)
	}

	printWelcome(out, doc)
	reader := inputReader(cmd)
	for {
		promptColor.Fprint(out, "> ")
		line, readErr := reader.ReadString('\n')
		text := strings.TrimSpace(line)

		switch {
		case text == "/exit" || text == "/quit":
			return nil
		case text == "/new":
			selection.NewChat()
			if err := selection.Select(doc); err != nil {
				return err
			}
			fmt.Fprintln(out, "Started a new conversation.")
			printWelcome(out, doc)
		case text != "":
			if q, ok := suggestion(text, sessionController.Conversation(doc.ID)); ok {
				text = q
				userColor.Fprint(out, "You: ")
				fmt.Fprintln(out, q)
			}
			msg, err := sessionController.Send(ctx, text)
			switch {
			case err == nil:
				printAnswer(out, msg)
			case domain.IsGuardRejection(err):
			case isAuthError(err):
				return fmt.Errorf("chat ended: %s", failureMessage(err))
			default:
				errorColor.Fprintln(out, failureMessage(err))
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return readErr
		}
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := checkChatServices(); err != nil {
		return err
	}
	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}
	question := strings.Join(args[1:], " ")

	msg, err := sessionController.SendTo(cmd.Context(), id, question)
	if err != nil {
		return fmt.Errorf("failed to ask: %s", failureMessage(err))
	}

	out := cmd.OutOrStdout()
	if msg.Failed {
		return errors.New(msg.Text)
	}
	fmt.Fprintln(out, msg.Text)
	printSources(out, msg.Sources)
	return nil
}

// suggestion maps "1"-"3" to a suggested question while the conversation
// is fresh.
func suggestion(text string, conv domain.Conversation) (string, bool) {
	if !conv.Fresh() {
		return "", false
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > len(domain.SuggestedQuestions) {
		return "", false
	}
	return domain.SuggestedQuestions[n-1], true
}

func printWelcome(out io.Writer, doc domain.Document) {
	fmt.Fprintf(out, "Start chatting with %s\n", doc.Filename)
	fmt.Fprintln(out, "Try one of these:")
	for i, q := range domain.SuggestedQuestions {
		fmt.Fprintf(out, "  [%d] %s\n", i+1, q)
	}
	fmt.Fprintln(out, "Type /new to start over or /exit to leave.")
}

func printAnswer(out io.Writer, msg domain.Message) {
	if msg.Failed {
		errorColor.Fprint(out, "Bot: ")
		errorColor.Fprintln(out, msg.Text)
		return
	}
	botColor.Fprint(out, "Bot: ")
	fmt.Fprintln(out, msg.Text)
	printSources(out, msg.Sources)
}

func printSources(out io.Writer, sources []domain.Source) {
	if len(sources) == 0 {
		return
	}
	sourceColor.Fprintln(out, "Sources:")
	for _, s := range sources {
		sourceColor.Fprintf(out, "  • %s: %s\n", s.Filename, snippet(s.Text, 160))
	}
}

func printNotification(out io.Writer, n domain.Notification) {
	switch n.Level {
	case domain.NotifyError:
		errorColor.Fprintln(out, n.Message)
	case domain.NotifyWarn:
		noticeColor.Fprintln(out, n.Message)
	default:
		fmt.Fprintln(out, n.Message)
	}
}

func snippet(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit-1]) + "…"
	}
	return text
}

func isAuthError(err error) bool {
	return errors.Is(err, domain.ErrAuthRequired) ||
		errors.Is(err, domain.ErrAuthExpired) ||
		errors.Is(err, domain.ErrAuthInvalid)
}
