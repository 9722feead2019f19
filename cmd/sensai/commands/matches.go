package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// matchesCmd represents the matches command
var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "경기 일정 및 결과 조회",
	Long: `api-futebol 경기 일정(campeonatos/{id}/partidas)을 조회합니다.

Subcommands:
  next     - 특정 라운드 경기 목록
  results  - 팀의 최근 경기 결과

Example:
  go run ./cmd/sensai matches next --round 12
  go run ./cmd/sensai matches results --team 18 --n 5`,
}

var (
	matchesNextCmd = &cobra.Command{
		Use:   "next",
		Short: "라운드 경기 목록",
		RunE:  runNextMatches,
	}

	matchesResultsCmd = &cobra.Command{
		Use:   "results",
		Short: "팀 최근 경기 결과",
		RunE:  runTeamResults,
	}

	// Flags
	matchesRound int
	matchesTeam  int
	matchesN     int
)

func init() {
	rootCmd.AddCommand(matchesCmd)
	matchesCmd.AddCommand(matchesNextCmd)
	matchesCmd.AddCommand(matchesResultsCmd)

	matchesNextCmd.Flags().IntVar(&matchesRound, "round", 0, "round number")
	_ = matchesNextCmd.MarkFlagRequired("round")

	matchesResultsCmd.Flags().IntVar(&matchesTeam, "team", 0, "team id")
	matchesResultsCmd.Flags().IntVar(&matchesN, "n", 5, "number of played matches")
	_ = matchesResultsCmd.MarkFlagRequired("team")
}

func runNextMatches(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	matches, err := a.futebol.FetchNextRoundMatches(ctx, a.cfg.Futebol.CampeonatoID, matchesRound)
	if err != nil {
		return err
	}

	PrintHeader("Matches", [][2]string{
		{"Campeonato", itoa(a.cfg.Futebol.CampeonatoID)},
		{"Round", itoa(matchesRound)},
	})

	cols := []string{"ID", "MANDANTE", "VISITANTE", "STATUS", "DATA"}
	widths := []int{7, 20, 20, 12, 16}
	PrintTableHeader(cols, widths)
	for _, m := range matches {
		date := ""
		if !m.DataRealizada.IsZero() {
			date = m.DataRealizada.Format("2006-01-02 15:04")
		}
		PrintTableRow([]string{itoa(m.PartidaID), m.Mandante, m.Visitante, m.Status, date}, widths)
	}
	fmt.Println()
	return nil
}

func runTeamResults(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.futebol.FetchLastResults(ctx, a.cfg.Futebol.CampeonatoID, matchesTeam, matchesN)
	if err != nil {
		return err
	}

	PrintHeader("Team Results", [][2]string{
		{"Team", itoa(matchesTeam)},
		{"Matches", itoa(len(results))},
	})

	cols := []string{"RODADA", "ADVERSÁRIO", "MANDO", "PLACAR", "R"}
	widths := []int{6, 20, 5, 7, 1}
	PrintTableHeader(cols, widths)
	for _, r := range results {
		PrintTableRow([]string{
			itoa(r.Rodada),
			r.Adversario,
			r.Mando,
			fmt.Sprintf("%d-%d", r.GolsPro, r.GolsContra),
			r.Resultado,
		}, widths)
	}
	fmt.Println()
	return nil
}
