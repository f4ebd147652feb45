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

type ReviewRepository interface {
	ListByGround(ctx context.Context, groundId string) ([]models.Review, *apperrors.AppError)

	// Transaction operations
	GetCreateTransaction(ctx context.Context, review *models.Review) (types.Put, *apperrors.AppError)
}

type reviewRepo struct {
	db *database.DynamoDBClient
}

func NewReviewRepository(db *database.DynamoDBClient) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) ListByGround(ctx context.Context, groundId string) ([]models.Review, *apperrors.AppError) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :ground AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ground": &types.AttributeValueMemberS{Value: models.ReviewPK(groundId)},
			":prefix": &types.AttributeValueMemberS{Value: "REVIEW#"},
		},
	})

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list reviews")
	}

	var reviews []models.Review
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &reviews); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to unmarshal reviews")
	}

	return reviews, nil
}

// Transaction Operations

func (r *reviewRepo) GetCreateTransaction(ctx context.Context, review *models.Review) (types.Put, *apperrors.AppError) {
	review.PK = models.ReviewPK(review.GroundId)
	review.SK = models.ReviewSK(review.ReviewId)
	review.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(review)
	if err != nil {
		return types.Put{}, apperrors.Wrap(err, apperrors.CodeObjectMarshalError, "failed to marshal review")
	}

	return types.Put{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(SK)"),
	}, nil
}
