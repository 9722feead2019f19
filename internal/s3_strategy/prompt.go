package s3_strategy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"text/template"

	"github.com/wonny/sensai/internal/contracts"
)

// systemPrompt frames the model as a Cartola FC analyst
const systemPrompt = "Você é um analista tático para Cartola FC. Responda em português."

var strategyTemplate = template.Must(template.New("strategy").Parse(`
Você é um analista tático para Cartola FC.

– Resumo estatístico dos jogadores (pontos e custo-benefício):
{{.Summary}}

– Classificação atual do campeonato (top {{.TopN}}):
{{.Standings}}

Regras:
- Orçamento máximo: R${{.Budget}}
- Esquema tático: {{.Formation}}

Com base nesses dados, elabore:
1. Critérios de seleção de jogadores (incluindo posição na tabela).
2. Justificativas táticas.
3. Pontos de atenção para as próximas rodadas.
`))

type promptData struct {
	Summary   string
	Standings string
	TopN      int
	Budget    string
	Formation string
}

// BuildPrompt renders the narrative prompt. Summary and standings are embedded as JSON.
func BuildPrompt(req contracts.StrategyRequest) (string, error) {
	summary, err := json.Marshal(req.Summary)
	if err != nil {
		return "", fmt.Errorf("encode metrics summary: %w", err)
	}

	standings := req.Standings
	if standings == nil {
		standings = []contracts.Standing{}
	}
	standingsJSON, err := json.Marshal(standings)
	if err != nil {
		return "", fmt.Errorf("encode standings: %w", err)
	}

	var buf bytes.Buffer
	err = strategyTemplate.Execute(&buf, promptData{
		Summary:   string(summary),
		Standings: string(standingsJSON),
		TopN:      req.TopN,
		Budget:    strconv.FormatFloat(req.Budget, 'f', -1, 64),
		Formation: req.Formation.String(),
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}
