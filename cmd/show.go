package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/prompt"
	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/table"
)

var (
	showRowCap int
	showTokens bool
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the serialized data block without calling the model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := table.Load(args[0])
		if err != nil {
			return err
		}
		block := prompt.Serialize(wb, showRowCap)
		fmt.Fprint(cmd.OutOrStdout(), block)
		if showTokens {
			fmt.Fprintf(cmd.ErrOrStderr(), "≈ %d tokens\n", prompt.EstimateTokens(block))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&showRowCap, "rows", prompt.DefaultRowCap, "max data rows per table")
	showCmd.Flags().BoolVar(&showTokens, "tokens", false, "print an estimated token count to stderr")
}
