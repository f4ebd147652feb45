package repository

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/farhanms/playfield/common/database"
	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/models"
)

type PaymentRepository interface {
	GetById(ctx context.Context, paymentId string) (*models.Payment, *apperrors.AppError)

	// Transaction operations
	GetUpsertTransaction(ctx context.Context, payment *models.Payment) (types.Put, *apperrors.AppError)
}

type paymentRepo struct {
	db *database.DynamoDBClient
}

func NewPaymentRepository(db *database.DynamoDBClient) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) GetById(ctx context.Context, paymentId string) (*models.Payment, *apperrors.AppError) {
	result, err := r.db.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.PaymentPK(paymentId)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
	})

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get payment")
	}

	if result.Item == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "payment not found")
	}

	var payment models.Payment
	if err := attributevalue.UnmarshalMap(result.Item, &payment); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to unmarshal payment")
	}

	return &payment, nil
}

// Transaction Operations

// GetUpsertTransaction writes the payment record. No condition: the same
// composite id overwrites the previous attempt by design of the payment
// key.
func (r *paymentRepo) GetUpsertTransaction(ctx context.Context, payment *models.Payment) (types.Put, *apperrors.AppError) {
	payment.PK = models.PaymentPK(payment.PaymentId)
	payment.SK = models.MetaSK()
	payment.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(payment)
	if err != nil {
		return types.Put{}, apperrors.Wrap(err, apperrors.CodeObjectMarshalError, "failed to marshal payment")
	}

	return types.Put{
		TableName: aws.String(r.db.Table()),
		Item:      item,
	}, nil
}
