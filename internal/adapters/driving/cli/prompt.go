package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads without echo when stdin is a terminal, and falls
// back to a plain line otherwise.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) string {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func confirm(cmd *cobra.Command, reader *bufio.Reader, question string) bool {
	cmd.Printf("%s [y/N]: ", question)
	answer := strings.ToLower(readLine(reader))
	return answer == "y" || answer == "yes"
}

func parseDocumentID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid document id: " + arg)
	}
	return id, nil
}

func inputReader(cmd *cobra.Command) *bufio.Reader {
	var in io.Reader = cmd.InOrStdin()
	if r, ok := in.(*bufio.Reader); ok {
		return r
	}
	return bufio.NewReader(in)
}

// failureMessage returns the user-facing text carried by err, if any.
func failureMessage(err error) string {
	var fm interface{ Message() string }
	if errors.As(err, &fm) {
		return fm.Message()
	}
	switch {
	case errors.Is(err, domain.ErrAuthInvalid):
		return "the server rejected your credentials"
	case errors.Is(err, domain.ErrAuthExpired):
		return "your session has expired: run 'docchat login' again"
	}
	return err.Error()
}
