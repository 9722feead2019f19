package contracts

import "time"

// Standing is one row of a championship table
type Standing struct {
	Posicao  int      `json:"posicao"`
	TimeID   int      `json:"time_id"`
	Time     string   `json:"time"`
	Pontos   int      `json:"pontos"`
	Jogos    int      `json:"jogos"`
	Vitorias int      `json:"vitorias"`
	Empates  int      `json:"empates"`
	Derrotas int      `json:"derrotas"`
	GM       int      `json:"gm"`
	GC       int      `json:"gc"`
	SG       int      `json:"sg"`
	Ultimas5 []string `json:"ultimas5"`
}

// Match is a scheduled or played fixture
type Match struct {
	PartidaID     int       `json:"partida_id"`
	Rodada        int       `json:"rodada"`
	MandanteID    int       `json:"mandante_id"`
	Mandante      string    `json:"mandante"`
	VisitanteID   int       `json:"visitante_id"`
	Visitante     string    `json:"visitante"`
	PlacarCasa    *int      `json:"placar_mandante,omitempty"`
	PlacarFora    *int      `json:"placar_visitante,omitempty"`
	Status        string    `json:"status"`
	DataRealizada time.Time `json:"data_realizacao"`
	Estadio       string    `json:"estadio,omitempty"`
}

// Played reports whether both scores are known
func (m Match) Played() bool {
	return m.PlacarCasa != nil && m.PlacarFora != nil
}

// TeamResult is a played match seen from one team
type TeamResult struct {
	PartidaID  int    `json:"partida_id"`
	Rodada     int    `json:"rodada"`
	Adversario string `json:"adversario"`
	Mando      string `json:"mando"` // casa, fora
	GolsPro    int    `json:"gols_pro"`
	GolsContra int    `json:"gols_contra"`
	Resultado  string `json:"resultado"` // V, E, D
}
