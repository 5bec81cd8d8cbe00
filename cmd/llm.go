package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM usage",
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show aggregated LLM token usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		usage, err := s.LLMEvents().Usage(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		if usage.Requests == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		byPurpose, err := s.LLMEvents().UsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage by purpose: %w", err)
		}

		fmt.Println("Usage by Purpose")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-16s  %6s  %10s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		fmt.Println(strings.Repeat("─", 72))

		for _, p := range byPurpose {
			total := p.InputTokens + p.OutputTokens
			fmt.Printf("%-16s  %6d  %10d  %10d  %10d  %8d\n",
				p.Purpose, p.Calls, p.InputTokens, p.OutputTokens, total, p.AvgLatencyMs)
		}

		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n",
			"TOTAL", usage.Requests, usage.InputTokens, usage.OutputTokens,
			usage.InputTokens+usage.OutputTokens)

		if usage.Failures > 0 {
			fmt.Printf("\n%d of %d requests failed.\n", usage.Failures, usage.Requests)
		}
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmUsageCmd)
}
