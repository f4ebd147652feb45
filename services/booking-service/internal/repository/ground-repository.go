package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/farhanms/playfield/common/database"
	apperrors "github.com/farhanms/playfield/common/errors"
	"github.com/farhanms/playfield/common/models"
)

type GroundRepository interface {
	Create(ctx context.Context, ground *models.Ground) *apperrors.AppError
	GetById(ctx context.Context, groundId string) (*models.Ground, *apperrors.AppError)
	ListByOwner(ctx context.Context, ownerId string) ([]models.Ground, *apperrors.AppError)
	ListOpen(ctx context.Context) ([]models.Ground, *apperrors.AppError)
	Update(ctx context.Context, ground *models.Ground) *apperrors.AppError
	Delete(ctx context.Context, groundId string) *apperrors.AppError

	// Transaction operations
	GetAddRatingTransaction(ctx context.Context, groundId string, rating int) types.Update
}

type groundRepo struct {
	db *database.DynamoDBClient
}

func NewGroundRepository(db *database.DynamoDBClient) GroundRepository {
	return &groundRepo{db: db}
}

func (r *groundRepo) Create(ctx context.Context, ground *models.Ground) *apperrors.AppError {
	ground.PK = models.GroundPK(ground.GroundId)
	ground.SK = models.MetaSK()
	ground.GSI1PK = models.OwnerGSI1PK(ground.OwnerId)
	ground.GSI1SK = models.GroundGSI1SK(ground.GroundId)
	ground.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(ground)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeObjectMarshalError, "failed to marshal ground")
	}

	_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})

	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create ground")
	}

	return nil
}

func (r *groundRepo) GetById(ctx context.Context, groundId string) (*models.Ground, *apperrors.AppError) {
	result, err := r.db.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.GroundPK(groundId)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
	})

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get ground")
	}

	if result.Item == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "ground not found")
	}

	var ground models.Ground
	if err := attributevalue.UnmarshalMap(result.Item, &ground); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to unmarshal ground")
	}

	return &ground, nil
}

func (r *groundRepo) ListByOwner(ctx context.Context, ownerId string) ([]models.Ground, *apperrors.AppError) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :owner AND begins_with(GSI1SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner":  &types.AttributeValueMemberS{Value: models.OwnerGSI1PK(ownerId)},
			":prefix": &types.AttributeValueMemberS{Value: "GROUND#"},
		},
	})

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list owner grounds")
	}

	var grounds []models.Ground
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &grounds); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to unmarshal grounds")
	}

	return grounds, nil
}

func (r *groundRepo) ListOpen(ctx context.Context) ([]models.Ground, *apperrors.AppError) {
	result, err := r.db.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.db.Table()),
		FilterExpression: aws.String("begins_with(PK, :prefix) AND SK = :meta AND #status = :open"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":prefix": &types.AttributeValueMemberS{Value: "GROUND#"},
			":meta":   &types.AttributeValueMemberS{Value: models.MetaSK()},
			":open":   &types.AttributeValueMemberS{Value: string(models.GroundStatusOpen)},
		},
	})

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list open grounds")
	}

	var grounds []models.Ground
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &grounds); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to unmarshal grounds")
	}

	return grounds, nil
}

func (r *groundRepo) Update(ctx context.Context, ground *models.Ground) *apperrors.AppError {
	ground.UpdatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(ground)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeObjectMarshalError, "failed to marshal ground")
	}

	_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})

	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update ground")
	}

	return nil
}

func (r *groundRepo) Delete(ctx context.Context, groundId string) *apperrors.AppError {
	_, err := r.db.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.GroundPK(groundId)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
	})

	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete ground")
	}

	return nil
}

// Transaction Operations

// GetAddRatingTransaction atomically folds a new review rating into the
// ground's aggregate counters.
func (r *groundRepo) GetAddRatingTransaction(ctx context.Context, groundId string, rating int) types.Update {
	return types.Update{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.GroundPK(groundId)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
		UpdateExpression:    aws.String("ADD rating_sum :rating, rating_count :one"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rating": &types.AttributeValueMemberN{Value: strconv.Itoa(rating)},
			":one":    &types.AttributeValueMemberN{Value: "1"},
		},
	}
}
