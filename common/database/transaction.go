package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// maxTransactItems is the DynamoDB TransactWriteItems cap.
const maxTransactItems = 100

// TransactionBuilder collects the writes of one booking-flow mutation
// (claim + booking, payment + status update, release + transition) so
// they commit or fail as a unit.
type TransactionBuilder struct {
	writes []types.TransactWriteItem
}

func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{}
}

func (tb *TransactionBuilder) add(write types.TransactWriteItem) error {
	if len(tb.writes) >= maxTransactItems {
		return fmt.Errorf("transaction exceeds %d items", maxTransactItems)
	}
	tb.writes = append(tb.writes, write)
	return nil
}

func (tb *TransactionBuilder) AddPut(put types.Put) error {
	return tb.add(types.TransactWriteItem{Put: &put})
}

func (tb *TransactionBuilder) AddUpdate(update types.Update) error {
	return tb.add(types.TransactWriteItem{Update: &update})
}

func (tb *TransactionBuilder) AddDelete(del types.Delete) error {
	return tb.add(types.TransactWriteItem{Delete: &del})
}

// Execute commits the collected writes. Condition failures surface as a
// TransactionCanceledException, see IsConditionFailure.
func (tb *TransactionBuilder) Execute(ctx context.Context, client *dynamodb.Client) error {
	if len(tb.writes) == 0 {
		return fmt.Errorf("empty transaction")
	}

	_, err := client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: tb.writes,
	})
	return err
}

func (tb *TransactionBuilder) Count() int {
	return len(tb.writes)
}
