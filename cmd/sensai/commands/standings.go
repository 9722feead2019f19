package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/sensai/internal/external/futebol"
)

// standingsCmd represents the standings command
var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "리그 순위표 조회",
	Long: `api-futebol 순위표를 조회합니다 (campeonatos/{id}/classificacao).

Example:
  go run ./cmd/sensai standings
  go run ./cmd/sensai standings --top 5`,
	RunE: runStandings,
}

var standingsTop int

func init() {
	rootCmd.AddCommand(standingsCmd)

	standingsCmd.Flags().IntVar(&standingsTop, "top", 0, "number of rows (0 = all)")
}

func runStandings(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	standings, err := a.futebol.FetchStandings(ctx, a.cfg.Futebol.CampeonatoID)
	if err != nil {
		return err
	}
	if standingsTop > 0 {
		standings = futebol.TopStandings(standings, standingsTop)
	}

	PrintHeader("Standings", [][2]string{
		{"Campeonato", itoa(a.cfg.Futebol.CampeonatoID)},
	})

	cols := []string{"#", "TIME", "P", "J", "V", "E", "D", "SG", "ÚLTIMAS"}
	widths := []int{3, 20, 3, 3, 3, 3, 3, 4, 10}
	PrintTableHeader(cols, widths)
	for _, s := range standings {
		PrintTableRow([]string{
			itoa(s.Posicao),
			s.Time,
			itoa(s.Pontos),
			itoa(s.Jogos),
			itoa(s.Vitorias),
			itoa(s.Empates),
			itoa(s.Derrotas),
			itoa(s.SG),
			strings.Join(s.Ultimas5, ""),
		}, widths)
	}
	fmt.Println()
	return nil
}
