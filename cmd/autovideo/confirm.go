package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"autovideo/internal/assembly"
)

// newConfirmer picks the prompt policy for a conversion run. --yes accepts
// everything while still echoing the prompt, a terminal gets asked
// directly, and anything else declines so gated warnings become errors
// instead of hanging a scripted run.
func newConfirmer(cmd *cobra.Command, assumeYes bool) assembly.Confirmer {
	if assumeYes {
		return autoApprove{out: cmd.OutOrStdout()}
	}
	if file, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		return &stdinConfirmer{in: bufio.NewReader(file), out: cmd.OutOrStdout()}
	}
	return assembly.DeclineAll{}
}

// autoApprove answers every prompt affirmatively, printing what an
// interactive user would have typed.
type autoApprove struct {
	out io.Writer
}

func (a autoApprove) Confirm(prompt string) (bool, error) {
	fmt.Fprintln(a.out, prompt+"Y")
	return true, nil
}

// stdinConfirmer asks on the terminal and reads one line per prompt. Only
// a plain y counts as approval, matching the (y/N) default.
type stdinConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (s *stdinConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}
