package export

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/wonny/sensai/internal/contracts"
	"github.com/wonny/sensai/pkg/config"
	"github.com/wonny/sensai/pkg/database"
	"github.com/wonny/sensai/pkg/logger"
)

// NewSink builds the sink selected by EXPORT_SINK.
// db is only used by the postgres sink and may be nil otherwise.
// ⭐ SSOT: 싱크 선택은 여기서만
func NewSink(ctx context.Context, cfg *config.Config, db *database.DB, log *logger.Logger) (contracts.Sink, error) {
	switch cfg.Export.Sink {
	case "", "file":
		return NewFileSink(cfg.Data.ProcessedDir, log), nil

	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("postgres sink requires a database connection")
		}
		sink := NewPostgresSink(db.Pool, log)
		if err := sink.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return sink, nil

	case "dynamodb":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Export.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return NewDynamoSink(dynamodb.NewFromConfig(awsCfg), cfg.Export.DynamoTable, log), nil

	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Export.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return NewS3Sink(s3.NewFromConfig(awsCfg), cfg.Export.S3Bucket, cfg.Export.S3Prefix, log), nil
	}

	return nil, fmt.Errorf("unknown export sink %q", cfg.Export.Sink)
}
