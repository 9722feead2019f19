package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/sensai/internal/brain"
	"github.com/wonny/sensai/internal/contracts"
)

// lineupCmd represents the lineup command
var lineupCmd = &cobra.Command{
	Use:   "lineup",
	Short: "예산 제약 라인업 구성 (S0 → S1 → S2)",
	Long: `선수 데이터를 불러와 지표를 계산하고 라인업을 구성합니다.

포지션별 cost_benefit 순위대로, 남은 예산에 맞는 선수만 선택합니다.
예산을 넘는 선수는 건너뜁니다 (미루지 않음).

Example:
  go run ./cmd/sensai lineup
  go run ./cmd/sensai lineup --budget 120 --formation 1-4-3-3
  go run ./cmd/sensai lineup --profile ataque --source api --rounds 1,2,3`,
	RunE: runLineup,
}

func init() {
	rootCmd.AddCommand(lineupCmd)
	addRunFlags(lineupCmd)
}

func runLineup(cmd *cobra.Command, args []string) error {
	return runPipeline(cmd, false)
}

// runPipeline is shared by lineup and strategy
func runPipeline(cmd *cobra.Command, withStrategy bool) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	runConfig, p, err := a.resolveRun(cmd, withStrategy)
	if err != nil {
		return err
	}

	PrintHeader("Lineup", [][2]string{
		{"Profile", orDefault(profileName)},
		{"Budget", formatFloat(p.Budget)},
		{"Formation", runConfig.Formation.String()},
		{"Source", sourceKind},
	})

	result, err := a.orchestrator.Run(ctx, runConfig)
	if result != nil && result.Lineup != nil {
		printLineup(result)
	}
	if errors.Is(err, contracts.ErrNarratorDisabled) {
		PrintWarning("OPENAI_API_KEY not set: lineup shown without strategy")
		return nil
	}
	if err != nil {
		return err
	}

	if result.Strategy != "" {
		fmt.Println()
		PrintDoubleSeparator()
		fmt.Println("  Strategy")
		PrintSeparator()
		fmt.Println(result.Strategy)
	}

	fmt.Println()
	PrintSuccess(fmt.Sprintf("Run %s completed in %.2fs", result.RunID, result.Duration.Seconds()))
	return nil
}

func printLineup(result *brain.RunResult) {
	l := result.Lineup

	fmt.Println()
	PrintPicks(l.Picks)
	PrintSeparator()
	PrintKeyValue("Total price", formatFloat(l.TotalPrice), 16)
	PrintKeyValue("Remaining budget", formatFloat(l.RemainingBudget), 16)
	PrintKeyValue("Projected points", formatFloat(l.ProjectedPoints()), 16)

	for _, s := range l.Formation.Slots {
		PrintKeyValue(string(s.Position), fmt.Sprintf("%d/%d", l.Filled[s.Position], s.Count), 16)
	}

	if !l.Complete() {
		PrintWarning("Formation not fully filled within budget")
	}
	if q := result.QualitySnapshot; q != nil && !q.Passed {
		PrintWarning(fmt.Sprintf("Data quality score %.2f below threshold", q.QualityScore))
	}
}

func orDefault(name string) string {
	if name == "" {
		return "default"
	}
	return name
}
