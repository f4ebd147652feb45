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

type SlotClaimRepository interface {
	GetByKey(ctx context.Context, groundId, date, timeSlot string) (*models.SlotClaim, *apperrors.AppError)

	// Transaction operations
	GetClaimTransaction(ctx context.Context, claim *models.SlotClaim) (types.Put, *apperrors.AppError)
	GetReleaseTransaction(ctx context.Context, groundId, date, timeSlot string) types.Delete
}

type slotClaimRepo struct {
	db *database.DynamoDBClient
}

func NewSlotClaimRepository(db *database.DynamoDBClient) SlotClaimRepository {
	return &slotClaimRepo{db: db}
}

func (r *slotClaimRepo) GetByKey(ctx context.Context, groundId, date, timeSlot string) (*models.SlotClaim, *apperrors.AppError) {
	result, err := r.db.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.SlotClaimPK(groundId)},
			"SK": &types.AttributeValueMemberS{Value: models.SlotClaimSK(date, timeSlot)},
		},
	})

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get slot claim")
	}

	if result.Item == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "slot claim not found")
	}

	var claim models.SlotClaim
	if err := attributevalue.UnmarshalMap(result.Item, &claim); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to unmarshal slot claim")
	}

	return &claim, nil
}

// Transaction Operations

// GetClaimTransaction produces the conditional put that wins or loses the
// race for a slot. The condition fails when another booking already holds
// the (ground, date, slot) key.
func (r *slotClaimRepo) GetClaimTransaction(ctx context.Context, claim *models.SlotClaim) (types.Put, *apperrors.AppError) {
	claim.PK = models.SlotClaimPK(claim.GroundId)
	claim.SK = models.SlotClaimSK(claim.Date, claim.TimeSlot)
	claim.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(claim)
	if err != nil {
		return types.Put{}, apperrors.Wrap(err, apperrors.CodeObjectMarshalError, "failed to marshal slot claim")
	}

	return types.Put{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}, nil
}

func (r *slotClaimRepo) GetReleaseTransaction(ctx context.Context, groundId, date, timeSlot string) types.Delete {
	return types.Delete{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.SlotClaimPK(groundId)},
			"SK": &types.AttributeValueMemberS{Value: models.SlotClaimSK(date, timeSlot)},
		},
	}
}
