package commands

import (
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "지표 테이블 저장 (file|postgres|dynamodb|s3)",
	Long: `S0 → S1 결과 테이블을 EXPORT_SINK에 저장합니다.

  file      <PROCESSED_DIR>/<category>/<filename> (CSV)
  postgres  processed.exports (JSONB, DATABASE_URL 필요)
  dynamodb  DYNAMO_TABLE (BatchWriteItem)
  s3        s3://<S3_BUCKET>/<S3_PREFIX>/<category>/<filename>

Example:
  go run ./cmd/sensai export
  go run ./cmd/sensai export --category metrics --filename rodada_10.csv`,
	RunE: runExport,
}

var (
	exportCategory string
	exportFilename string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportCategory, "category", "metrics", "export category (sub-directory / key prefix)")
	exportCmd.Flags().StringVar(&exportFilename, "filename", "player_metrics.csv", "export file name")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, appOptions{withSink: true})
	if err != nil {
		return err
	}
	defer a.Close()

	location, err := a.orchestrator.ExportMetrics(ctx, exportCategory, exportFilename)
	if err != nil {
		return err
	}

	PrintSuccess("Exported to " + location)
	return nil
}
