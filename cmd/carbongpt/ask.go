package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"carbongpt/internal/domain"
)

var askFollowUp string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and print the answer",
	Long: `Ask runs one question through the pipeline without the interactive UI.
If the question is ambiguous the clarification question is printed instead;
rerun with --follow-up to supply the missing detail in the same turn.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askFollowUp, "follow-up", "", "answer to the clarification question, resolved in the same run")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := buildApp(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer a.close()

	question := strings.Join(args, " ")
	sess := a.sessions.Open("")
	turn, err := sess.Ask(ctx, question)
	if err != nil {
		return err
	}

	if turn.Clarification != "" {
		if askFollowUp == "" {
			fmt.Println(turn.Clarification)
			return nil
		}
		turn, err = sess.FollowUp(ctx, askFollowUp)
		if err != nil {
			return err
		}
	}

	fmt.Println(turn.Answer)
	if len(turn.Sources) > 0 {
		fmt.Println()
		fmt.Println("Significant source documents:")
		for _, src := range turn.Sources {
			line := fmt.Sprintf("- File: %s", src.Source)
			if src.Clause != "" && !strings.EqualFold(src.Clause, domain.ClauseUnknown) {
				line += fmt.Sprintf(" | Clause: %s", src.Clause)
			}
			fmt.Println(line)
		}
	}
	return nil
}
