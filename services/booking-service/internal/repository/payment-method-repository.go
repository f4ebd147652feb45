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

type PaymentMethodRepository interface {
	Create(ctx context.Context, method *models.OwnerPaymentMethod) *apperrors.AppError
	ListByOwner(ctx context.Context, ownerId string) ([]models.OwnerPaymentMethod, *apperrors.AppError)
	Delete(ctx context.Context, ownerId, methodId string) *apperrors.AppError
}

type paymentMethodRepo struct {
	db *database.DynamoDBClient
}

func NewPaymentMethodRepository(db *database.DynamoDBClient) PaymentMethodRepository {
	return &paymentMethodRepo{db: db}
}

func (r *paymentMethodRepo) Create(ctx context.Context, method *models.OwnerPaymentMethod) *apperrors.AppError {
	method.PK = models.PaymentMethodPK(method.OwnerId)
	method.SK = models.PaymentMethodSK(method.MethodId)
	method.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(method)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeObjectMarshalError, "failed to marshal payment method")
	}

	_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(SK)"),
	})

	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create payment method")
	}

	return nil
}

func (r *paymentMethodRepo) ListByOwner(ctx context.Context, ownerId string) ([]models.OwnerPaymentMethod, *apperrors.AppError) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :owner AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner":  &types.AttributeValueMemberS{Value: models.PaymentMethodPK(ownerId)},
			":prefix": &types.AttributeValueMemberS{Value: "PAYMETHOD#"},
		},
	})

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list payment methods")
	}

	var methods []models.OwnerPaymentMethod
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &methods); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to unmarshal payment methods")
	}

	return methods, nil
}

func (r *paymentMethodRepo) Delete(ctx context.Context, ownerId, methodId string) *apperrors.AppError {
	_, err := r.db.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.PaymentMethodPK(ownerId)},
			"SK": &types.AttributeValueMemberS{Value: models.PaymentMethodSK(methodId)},
		},
	})

	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete payment method")
	}

	return nil
}
