package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cylinder-sync/internal/domain/reconcile"
)

// terminalPrompter asks the operator to settle ask_user conflicts.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalPrompter(in io.Reader, out io.Writer) *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(in), out: out}
}

func (p *terminalPrompter) Choose(ctx context.Context, c reconcile.ConflictRecord) (reconcile.Strategy, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintf(p.out, "conflict on %s %s\n", c.Kind, c.ID)
	fmt.Fprintf(p.out, "  local  updated %s\n", formatVersion(c.Local.Metadata().Version()))
	fmt.Fprintf(p.out, "  remote updated %s\n", formatVersion(c.Remote.Metadata().Version()))
	fmt.Fprint(p.out, "keep [l]ocal, [r]emote or [m]erge? ")

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "l", "local":
		return reconcile.StrategyClientWins, nil
	case "m", "merge":
		return reconcile.StrategyMerge, nil
	default:
		return reconcile.StrategyServerWins, nil
	}
}

func formatVersion(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.UTC().Format(time.RFC3339)
}
