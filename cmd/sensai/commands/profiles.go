package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/sensai/internal/profile"
	"github.com/wonny/sensai/pkg/config"
)

// profilesCmd represents the profiles command
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "실행 프로파일 조회 및 검증",
	Long: `프로파일 YAML을 검증하고 목록과 해시를 출력합니다.

파일이 지정되지 않으면 DEFAULT_BUDGET / DEFAULT_FORMATION / DEFAULT_TOP_N으로
만든 기본 프로파일만 표시합니다.

Example:
  go run ./cmd/sensai profiles --profiles-file config/profiles.yaml`,
	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	f, err := loadProfiles(cfg)
	if err != nil {
		return err
	}
	hash, err := profile.Hash(f)
	if err != nil {
		return err
	}

	PrintHeader("Profiles", [][2]string{
		{"Hash", hash[:12]},
		{"Count", itoa(len(f.Profiles))},
	})

	cols := []string{"NAME", "BUDGET", "FORMATION", "TOP_N", "STRATEGY"}
	widths := []int{16, 8, 20, 5, 8}
	PrintTableHeader(cols, widths)
	for _, name := range f.Names() {
		p := f.Profiles[name]
		PrintTableRow([]string{
			name,
			formatFloat(p.Budget),
			p.Formation,
			itoa(p.TopN),
			fmt.Sprintf("%v", p.Strategy),
		}, widths)
	}

	for _, w := range profile.Warn(f) {
		PrintWarning(fmt.Sprintf("[%s] %s", w.Code, w.Message))
	}
	return nil
}
