package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks a yes/no question before a destructive or risky action.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Always answers yes without asking. Used for --yes.
type Always struct{}

func (Always) Confirm(string) (bool, error) { return true, nil }

// Terminal asks on Out and reads the answer from In. Only "y" or "yes"
// (any case) confirm; EOF counts as no.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	r *bufio.Reader
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{In: in, Out: out, r: bufio.NewReader(in)}
}

func (t *Terminal) Confirm(question string) (bool, error) {
	if t.r == nil {
		t.r = bufio.NewReader(t.In)
	}
	if _, err := fmt.Fprintf(t.Out, "%s [y/N]: ", question); err != nil {
		return false, err
	}

	line, err := t.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
