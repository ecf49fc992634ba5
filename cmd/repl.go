package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".rangelogic_history"
	promptMain  = "range> "
)

var errorStyle = color.New(color.FgRed, color.Bold)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively apply operators to range lists",
	Long: `Reads lines of the form "<op> <left> <right>" and prints the result.
Range lists are YAML sequences written without spaces, e.g. >= [[1,99]] [10].
Type :quit to exit.`,
	Run: func(cmd *cobra.Command, args []string) {
		runRepl()
	},
}

func runRepl() {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Sprint(err.Error()))
			return
		}

		quit, err := evalReplLine(os.Stdout, line)
		if quit {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Sprint(err.Error()))
			continue
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
	}
}

// evalReplLine evaluates one REPL line. It reports whether the session
// should end.
func evalReplLine(w io.Writer, line string) (bool, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false, nil
	case line == ":quit":
		return true, nil
	case strings.HasPrefix(line, ":"):
		return false, fmt.Errorf("unknown command %s. Type :quit to exit", line)
	}

	fields := strings.Fields(line)
	if len(fields) != 3 {
		return false, fmt.Errorf("expected <op> <left> <right>, got %d fields", len(fields))
	}
	return false, runCompute(w, fields[0], fields[1], fields[2])
}
