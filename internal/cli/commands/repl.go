package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlscout/internal/report"
	"github.com/leapstack-labs/sqlscout/pkg/extract"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Analyze SQL interactively",
		Long: `Start an interactive prompt. Paste or type SQL; a statement runs when
it is terminated with a semicolon. Multi-line input is accumulated until
then. Dot-commands control the session (.help for the list).`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cfg := getConfig(cmd)

	historyFile := filepath.Join(os.TempDir(), "sqlscout_history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sqlscout> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sqlscout REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	format := report.Mode(cfg.Format)
	var buffer strings.Builder
	seq := 0
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt("sqlscout> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Dot-commands only apply outside an accumulating statement.
		if buffer.Len() == 0 && strings.HasPrefix(line, ".") {
			quit, newFormat := handleDotCommand(cmd, line, format)
			if quit {
				break
			}
			format = newFormat
			continue
		}

		// Accumulate multi-line SQL until a terminating semicolon.
		buffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buffer.WriteString(" ")
			rl.SetPrompt("    ...> ")
			continue
		}
		rl.SetPrompt("sqlscout> ")

		sql := buffer.String()
		buffer.Reset()
		seq++

		r := report.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)
		for _, res := range extract.Extract(sql, fmt.Sprintf("repl:%d", seq)) {
			r.Statement(res)
		}
	}

	return nil
}

// handleDotCommand processes a REPL dot-command. It returns whether to
// quit and the (possibly updated) output format.
func handleDotCommand(cmd *cobra.Command, line string, format report.Mode) (bool, report.Mode) {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true, format

	case ".format":
		if len(parts) > 1 {
			switch parts[1] {
			case string(report.ModeText), string(report.ModeJSON):
				return false, report.Mode(parts[1])
			}
		}
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "usage: .format text|json")
		return false, format

	case ".help":
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, "Commands:")
		_, _ = fmt.Fprintln(out, "  .format text|json  Set output format")
		_, _ = fmt.Fprintln(out, "  .help              Show this help")
		_, _ = fmt.Fprintln(out, "  .quit              Exit the REPL")
		return false, format

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "unknown command %s (try .help)\n", parts[0])
		return false, format
	}
}
