package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/ai"
	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/logger"
	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/prompt"
	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/session"
	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/table"
)

var (
	chatDataPath string
	chatRowCap   int
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Console question/answer loop over a local data file",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings()
		if err != nil {
			return err
		}
		if err := s.Validate(); err != nil {
			return err
		}

		path := chatDataPath
		if path == "" {
			path = s.ResolveDataPath()
		}
		wb, err := table.Load(path)
		if err != nil {
			if errors.Is(err, table.ErrMissingSource) {
				return fmt.Errorf("missing data file: %s", path)
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "\n=== DATA LOADED ===")
		for _, t := range wb.Tables {
			fmt.Fprintf(out, "%s: %d rows, %d columns\n", t.Name, t.RowCount(), len(t.Columns))
		}
		fmt.Fprintln(out, "===================")
		fmt.Fprintln(out)

		rowCap := chatRowCap
		if rowCap == 0 {
			rowCap = s.RowCap
		}

		client := ai.Acquire(ai.Config{
			Endpoint:   s.ProjectEndpoint,
			Deployment: s.ModelDeployment,
			APIKey:     s.APIKey,
			Timeout:    time.Duration(s.HTTPTimeoutSec) * time.Second,
		})
		// file-only log keeps the REPL output clean
		log := logger.NewFileOnly(s.LogFile)
		defer func() { _ = log.Sync() }()

		sess := session.New(client, log, rowCap)
		sess.ReplaceData(wb)
		return runLoop(cmd.InOrStdin(), out, sess)
	},
}

// runLoop drives the read-eval-print loop. "quit" in any letter case
// exits; blank input re-prompts without sending a request; a failed
// request is printed as the answer and the loop keeps going.
func runLoop(in io.Reader, out io.Writer, sess *session.Session) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		fmt.Fprint(out, "Enter a question (or type 'quit' to exit): ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if strings.EqualFold(line, "quit") {
			return nil
		}
		if line == "" {
			fmt.Fprintln(out, "Please enter a question.")
			continue
		}

		fmt.Fprintln(out, "\n--- sending request ---")
		entry, err := sess.Ask(context.Background(), line)
		if err != nil {
			fmt.Fprintf(out, "✗ %v\n\n", err)
			continue
		}
		fmt.Fprintln(out, "\n--- answer ---")
		fmt.Fprintln(out, entry.Content)
		fmt.Fprintln(out, "--------------")
		fmt.Fprintln(out)
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatDataPath, "data", "", "data file (default: data.xlsx or data.txt in the working directory)")
	chatCmd.Flags().IntVar(&chatRowCap, "rows", 0, fmt.Sprintf("max data rows per table sent to the model (default %d)", prompt.DefaultRowCap))
}
