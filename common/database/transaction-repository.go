package database

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type TransactionRepository interface {
	Execute(ctx context.Context, transactionBuilder *TransactionBuilder) error
}

type transactionRepo struct {
	db *DynamoDBClient
}

func NewTransactionRepository(db *DynamoDBClient) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Execute(ctx context.Context, transactionBuilder *TransactionBuilder) error {
	return transactionBuilder.Execute(ctx, r.db.Client)
}

// IsConditionFailure reports whether a transaction was cancelled because a
// condition expression on one of its items did not hold.
func IsConditionFailure(err error) bool {
	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) {
		for _, reason := range canceled.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
		return false
	}

	var conditionFailed *types.ConditionalCheckFailedException
	return errors.As(err, &conditionFailed)
}
