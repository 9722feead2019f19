package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/sensai/internal/s1_metrics"
)

// metricsCmd represents the metrics command
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "선수 지표 계산 (S0 → S1)",
	Long: `avg_points (선수별 평균 점수)와 cost_benefit (avg_points / price)을 계산하고
요약 통계와 cost_benefit 상위 선수를 출력합니다.

Example:
  go run ./cmd/sensai metrics
  go run ./cmd/sensai metrics --top 20 --json`,
	RunE: runMetrics,
}

var (
	metricsTop  int
	metricsJSON bool
)

func init() {
	rootCmd.AddCommand(metricsCmd)

	metricsCmd.Flags().IntVar(&metricsTop, "top", 15, "number of players to list")
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "print JSON instead of tables")
}

func runMetrics(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.orchestrator.Metrics(ctx)
	if err != nil {
		return err
	}
	top := s1_metrics.Top(result.MetricsTable(), metricsTop)

	if metricsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"run_id":  result.RunID,
			"summary": result.Summary,
			"quality": result.QualitySnapshot,
			"top":     top,
		})
	}

	PrintHeader("Player Metrics", [][2]string{
		{"Source", result.Source},
		{"Rows", itoa(result.Summary.Rows)},
		{"Players", itoa(result.Summary.Players)},
	})
	if q := result.QualitySnapshot; q != nil {
		PrintKeyValue("Quality score", fmt.Sprintf("%.2f (passed=%v)", q.QualityScore, q.Passed), 14)
		PrintSeparator()
	}

	PrintStats("avg_points", result.Summary.AvgPoints)
	PrintStats("cost_benefit", result.Summary.CostBenefit)

	fmt.Println()
	PrintPicks(top)
	return nil
}
