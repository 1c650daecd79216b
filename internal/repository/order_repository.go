package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stocbot/order-assistant/internal/domain"
)

// OrderRepository is the append-only ledger of order lines. Records are never
// updated or deleted once written.
type OrderRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewOrderRepository(client *dynamodb.Client, tableName string) *OrderRepository {
	return &OrderRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *OrderRepository) AppendLine(ctx context.Context, record *domain.OrderRecord) error {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal order record: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})

	if err != nil {
		return fmt.Errorf("failed to append order line: %w", err)
	}

	return nil
}

func (r *OrderRepository) CountLines(ctx context.Context) (int, error) {
	var count int
	var startKey map[string]types.AttributeValue

	for {
		result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			Select:            types.SelectCount,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to count order lines: %w", err)
		}

		count += int(result.Count)

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return count, nil
}

// SumField scans the ledger and sums a numeric attribute across all rows.
func (r *OrderRepository) SumField(ctx context.Context, field string) (float64, error) {
	var total float64
	var startKey map[string]types.AttributeValue

	for {
		result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(r.tableName),
			ProjectionExpression: aws.String("#f"),
			ExpressionAttributeNames: map[string]string{
				"#f": field,
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to scan order lines: %w", err)
		}

		for _, item := range result.Items {
			n, ok := item[field].(*types.AttributeValueMemberN)
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(n.Value, 64)
			if err != nil {
				return 0, fmt.Errorf("failed to parse %s value: %w", field, err)
			}
			total += v
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return total, nil
}
