package commands

import (
	"github.com/spf13/cobra"
)

// strategyCmd represents the strategy command
var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "라인업 + 전술 서술 생성 (S0 → S3)",
	Long: `라인업을 구성한 뒤, 지표 요약과 상위 N개 팀 순위를
LLM에 전달해 전술 서술을 생성합니다.

OPENAI_API_KEY가 없으면 서술 없이 라인업만 출력합니다.

Example:
  go run ./cmd/sensai strategy --top-n 5
  go run ./cmd/sensai strategy --budget 140 --formation 4-4-2`,
	RunE: runStrategy,
}

func init() {
	rootCmd.AddCommand(strategyCmd)
	addRunFlags(strategyCmd)
}

func runStrategy(cmd *cobra.Command, args []string) error {
	return runPipeline(cmd, true)
}
