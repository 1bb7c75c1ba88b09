package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"pwtune/internal/services"
)

var errShellQuit = errors.New("quit requested")

func newShellCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive prompt for browsing defaults and staging edits",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.openSession(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          shellPrompt(sess),
				HistoryFile:     filepath.Join(filepath.Dir(ctx.configValue().Staging.DraftsPath), "shell_history"),
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
				AutoComplete:    shellCompleter(sess),
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("initialize readline: %w", err)
			}
			defer rl.Close()

			sh := &shell{ctx: ctx, sess: sess, out: rl.Stdout()}
			fmt.Fprintf(sh.out, "Editing %s. Type 'help' for commands.\n", sess.model.Target())
			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					fmt.Fprintln(sh.out, "Use 'quit' to exit.")
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
				if err := sh.execute(cmd.Context(), line); err != nil {
					if errors.Is(err, errShellQuit) {
						return nil
					}
					fmt.Fprintf(sh.out, "error (%s): %v\n", services.Kind(err), err)
				}
			}
		},
	}
}

func shellPrompt(sess *session) string {
	return fmt.Sprintf("pwtune %s> ", sess.model.Target().Section)
}

func shellCompleter(sess *session) readline.AutoCompleter {
	keys := sess.model.Defaults().Keys()
	items := make([]readline.PrefixCompleterInterface, 0, len(keys))
	for _, key := range keys {
		items = append(items, readline.PcItem(key))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("show"),
		readline.PcItem("get", items...),
		readline.PcItem("set", items...),
		readline.PcItem("staged"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// shell dispatches one prompt line at a time against an open session.
type shell struct {
	ctx  *commandContext
	sess *session
	out  io.Writer
}

func (s *shell) execute(ctx context.Context, line string) error {
	args := parseShellArgs(line)
	if len(args) == 0 {
		return nil
	}
	switch args[0] {
	case "quit", "exit":
		return errShellQuit
	case "help":
		fmt.Fprintln(s.out, "Commands:")
		fmt.Fprintln(s.out, "  show                 grouped defaults with live and staged values")
		fmt.Fprintln(s.out, "  get KEY              default, live and staged value of KEY")
		fmt.Fprintln(s.out, "  set KEY VALUE        stage VALUE for KEY and save it as a draft")
		fmt.Fprintln(s.out, "  staged               list staged edits")
		fmt.Fprintln(s.out, "  quit                 leave the shell")
		return nil
	case "show":
		view := buildShowView(s.sess.model, s.ctx.groupPolicy())
		for _, sec := range view.Sections {
			fmt.Fprintln(s.out, renderSectionHeader(sec.Title, false))
			for _, e := range sec.Entries {
				def := e.Default
				fmt.Fprintf(s.out, "  %-28s default=%s current=%s staged=%s\n",
					e.Key, valueCell(&def), valueCell(e.Current), valueCell(e.Staged))
			}
		}
		return nil
	case "get":
		if len(args) != 2 {
			return errors.New("usage: get KEY")
		}
		return s.get(args[1])
	case "set":
		if len(args) != 3 {
			return errors.New("usage: set KEY VALUE")
		}
		value := parseEditValue(args[2], false)
		if err := stageAndPersist(ctx, s.sess, args[1], value); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "staged %s = %s\n", args[1], value.Text())
		return nil
	case "staged":
		edits := s.sess.model.Staged().Edits()
		if len(edits) == 0 {
			fmt.Fprintln(s.out, "no staged edits")
			return nil
		}
		for _, e := range edits {
			fmt.Fprintf(s.out, "  %s = %s\n", e.Key, e.Value.Text())
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q (try 'help')", args[0])
	}
}

func (s *shell) get(key string) error {
	entry, err := s.sess.model.DefaultEntry(key)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s\n  default: %s\n", key, entry.Value.Text())
	if entry.HasOptions() {
		fmt.Fprintf(s.out, "  options: %s\n", optionsCell(entry.Options))
	}
	if v, err := s.sess.model.CurrentValue(key); err == nil {
		fmt.Fprintf(s.out, "  current: %s\n", v.Text())
	}
	if v, err := s.sess.model.StagedValue(key); err == nil {
		fmt.Fprintf(s.out, "  staged:  %s\n", v.Text())
	}
	return nil
}

// parseShellArgs splits a prompt line on spaces, keeping double-quoted runs together.
func parseShellArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false
	quoted := false

	flush := func() {
		if current.Len() > 0 || quoted {
			args = append(args, current.String())
			current.Reset()
		}
		quoted = false
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return args
}
