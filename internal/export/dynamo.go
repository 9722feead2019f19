package export

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/wonny/sensai/internal/table"
	"github.com/wonny/sensai/pkg/logger"
)

// DynamoDBAPI is the subset of *dynamodb.Client the sink uses
type DynamoDBAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

const (
	maxBatch        = 25
	maxBatchRetries = 6
)

// DynamoSink writes one item per row: PK "<category>#<filename>", SK row number
type DynamoSink struct {
	client  DynamoDBAPI
	table   string
	backoff time.Duration
	logger  *logger.Logger
}

// NewDynamoSink creates a sink writing to tableName
func NewDynamoSink(client DynamoDBAPI, tableName string, log *logger.Logger) *DynamoSink {
	return &DynamoSink{
		client:  client,
		table:   tableName,
		backoff: 120 * time.Millisecond,
		logger:  log.WithFields(map[string]interface{}{"module": "export", "sink": "dynamodb"}),
	}
}

// Save writes the rows in batches of 25, retrying unprocessed items
func (s *DynamoSink) Save(ctx context.Context, t *table.Table, category, filename string) (string, error) {
	if _, err := objectKey(category, filename); err != nil {
		return "", err
	}

	pk := category + "#" + filename
	now := strconv.FormatInt(time.Now().Unix(), 10)
	cols := t.Columns()

	for start := 0; start < t.Len(); start += maxBatch {
		end := start + maxBatch
		if end > t.Len() {
			end = t.Len()
		}

		reqs := make([]types.WriteRequest, 0, end-start)
		for i := start; i < end; i++ {
			item := map[string]types.AttributeValue{
				"PK":        &types.AttributeValueMemberS{Value: pk},
				"SK":        &types.AttributeValueMemberN{Value: strconv.Itoa(i)},
				"UpdatedAt": &types.AttributeValueMemberN{Value: now},
			}
			for _, col := range cols {
				if _, reserved := item[col]; reserved {
					continue
				}
				item[col] = attributeValue(t.Get(i, col))
			}
			reqs = append(reqs, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
		}

		if err := s.batchWriteWithRetry(ctx, reqs); err != nil {
			return "", fmt.Errorf("batch write rows %d-%d: %w", start, end-1, err)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"table": s.table,
		"pk":    pk,
		"rows":  t.Len(),
	}).Info("Table exported")

	return fmt.Sprintf("dynamodb://%s/%s", s.table, pk), nil
}

func (s *DynamoSink) batchWriteWithRetry(ctx context.Context, reqs []types.WriteRequest) error {
	input := &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{s.table: reqs},
	}
	backoff := s.backoff

	for attempt := 0; attempt < maxBatchRetries; attempt++ {
		out, err := s.client.BatchWriteItem(ctx, input)
		if err != nil {
			return err
		}
		if len(out.UnprocessedItems) == 0 {
			return nil
		}
		input.RequestItems = out.UnprocessedItems

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 2*time.Second {
			backoff += s.backoff
		}
	}
	return fmt.Errorf("unprocessed items remained after retries for table %s", s.table)
}

// attributeValue maps a cell to N, S, BOOL or NULL. Non-finite floats become strings.
func attributeValue(v interface{}) types.AttributeValue {
	switch x := v.(type) {
	case nil:
		return &types.AttributeValueMemberNULL{Value: true}
	case bool:
		return &types.AttributeValueMemberBOOL{Value: x}
	case string:
		return &types.AttributeValueMemberS{Value: x}
	}
	f, ok := table.ToFloat(v)
	if !ok {
		return &types.AttributeValueMemberS{Value: table.FormatCell(v)}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &types.AttributeValueMemberS{Value: table.FormatCell(f)}
	}
	return &types.AttributeValueMemberN{Value: strconv.FormatFloat(f, 'f', -1, 64)}
}
