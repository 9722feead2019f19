package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	profileName  string
	profilesFile string
	sourceKind   string
	apiEndpoint  string
	apiRounds    []int
	strictPrice  bool
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sensai",
	Short: "sensai - Cartola FC 분석 및 라인업 구성",
	Long: `sensai Unified CLI

Cartola FC 선수 데이터를 정규화하고 지표를 계산한 뒤
예산과 포메이션 제약 아래 라인업을 구성합니다.

S0 (Load/Normalize) → S1 (Metrics) → S2 (Lineup) → S3 (Strategy)

Usage:
  go run ./cmd/sensai [command]

Examples:
  go run ./cmd/sensai lineup --budget 120 --formation 1-4-3-3
  go run ./cmd/sensai metrics --top 10
  go run ./cmd/sensai standings --top 5
  go run ./cmd/sensai api`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "run profile name (default: default)")
	rootCmd.PersistentFlags().StringVar(&profilesFile, "profiles-file", "", "profiles YAML file (default: $PROFILES_FILE)")
	rootCmd.PersistentFlags().StringVar(&sourceKind, "source", "csv", "player source (csv|api)")
	rootCmd.PersistentFlags().StringVar(&apiEndpoint, "endpoint", "atletas/mercado", "api-futebol endpoint for --source api")
	rootCmd.PersistentFlags().IntSliceVar(&apiRounds, "rounds", nil, "rounds to fetch for --source api (e.g. 1,2,3)")
	rootCmd.PersistentFlags().BoolVar(&strictPrice, "strict-price", false, "fail on non-positive prices instead of propagating Inf/NaN")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
