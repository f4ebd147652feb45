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

type BookingRepository interface {
	GetById(ctx context.Context, bookingId string) (*models.Booking, *apperrors.AppError)
	ListByGround(ctx context.Context, groundId string) ([]models.Booking, *apperrors.AppError)
	ListActiveByGround(ctx context.Context, groundId string) ([]models.Booking, *apperrors.AppError)
	ListByUser(ctx context.Context, userId string) ([]models.Booking, *apperrors.AppError)
	ListStalePending(ctx context.Context, before string) ([]models.Booking, *apperrors.AppError)

	// Transaction operations
	GetCreateTransaction(ctx context.Context, booking *models.Booking) (types.Put, *apperrors.AppError)
	GetUpdateStatusTransaction(ctx context.Context, bookingId string, from, to models.BookingStatus, reason string) types.Update
	GetUpdatePaymentStatusTransaction(ctx context.Context, bookingId string, to models.PaymentStatus) types.Update
}

type bookingRepo struct {
	db *database.DynamoDBClient
}

func NewBookingRepository(db *database.DynamoDBClient) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) GetById(ctx context.Context, bookingId string) (*models.Booking, *apperrors.AppError) {
	result, err := r.db.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.BookingPK(bookingId)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
	})

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get booking")
	}

	if result.Item == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "booking not found")
	}

	var booking models.Booking
	if err := attributevalue.UnmarshalMap(result.Item, &booking); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to unmarshal booking")
	}

	return &booking, nil
}

// ListByGround returns every booking of a ground regardless of status,
// ordered by date. The owner's booking screen shows rejected and
// cancelled history alongside the live entries.
func (r *bookingRepo) ListByGround(ctx context.Context, groundId string) ([]models.Booking, *apperrors.AppError) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :ground AND begins_with(GSI1SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ground": &types.AttributeValueMemberS{Value: models.BookingGroundGSI1PK(groundId)},
			":prefix": &types.AttributeValueMemberS{Value: "DATE#"},
		},
	})

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list ground bookings")
	}

	var bookings []models.Booking
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &bookings); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to unmarshal bookings")
	}

	return bookings, nil
}

// ListActiveByGround returns the pending and confirmed bookings of a
// ground, the input set of the availability resolver.
func (r *bookingRepo) ListActiveByGround(ctx context.Context, groundId string) ([]models.Booking, *apperrors.AppError) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :ground AND begins_with(GSI1SK, :prefix)"),
		FilterExpression:       aws.String("#status IN (:pending, :confirmed)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ground":    &types.AttributeValueMemberS{Value: models.BookingGroundGSI1PK(groundId)},
			":prefix":    &types.AttributeValueMemberS{Value: "DATE#"},
			":pending":   &types.AttributeValueMemberS{Value: string(models.BookingStatusPending)},
			":confirmed": &types.AttributeValueMemberS{Value: string(models.BookingStatusConfirmed)},
		},
	})

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list ground bookings")
	}

	var bookings []models.Booking
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &bookings); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to unmarshal bookings")
	}

	return bookings, nil
}

func (r *bookingRepo) ListByUser(ctx context.Context, userId string) ([]models.Booking, *apperrors.AppError) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		IndexName:              aws.String("GSI2"),
		KeyConditionExpression: aws.String("GSI2PK = :user"),
		ScanIndexForward:       aws.Bool(false),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberS{Value: models.BookingUserGSI2PK(userId)},
		},
	})

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list user bookings")
	}

	var bookings []models.Booking
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &bookings); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to unmarshal bookings")
	}

	return bookings, nil
}

// ListStalePending returns pending bookings whose date is before the
// given ISO date. Used by the daily sweep.
func (r *bookingRepo) ListStalePending(ctx context.Context, before string) ([]models.Booking, *apperrors.AppError) {
	result, err := r.db.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.db.Table()),
		FilterExpression: aws.String("begins_with(PK, :prefix) AND #status = :pending AND #date < :before"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
			"#date":   "date",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":prefix":  &types.AttributeValueMemberS{Value: "BOOKING#"},
			":pending": &types.AttributeValueMemberS{Value: string(models.BookingStatusPending)},
			":before":  &types.AttributeValueMemberS{Value: before},
		},
	})

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list stale bookings")
	}

	var bookings []models.Booking
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &bookings); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to unmarshal bookings")
	}

	return bookings, nil
}

// Transaction Operations

func (r *bookingRepo) GetCreateTransaction(ctx context.Context, booking *models.Booking) (types.Put, *apperrors.AppError) {
	booking.PK = models.BookingPK(booking.BookingId)
	booking.SK = models.MetaSK()
	booking.GSI1PK = models.BookingGroundGSI1PK(booking.GroundId)
	booking.GSI1SK = models.BookingDateGSI1SK(booking.Date, booking.TimeSlot)
	booking.GSI2PK = models.BookingUserGSI2PK(booking.UserId)
	booking.GSI2SK = models.BookingCreatedGSI2SK(time.Now())
	booking.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(booking)
	if err != nil {
		return types.Put{}, apperrors.Wrap(err, apperrors.CodeObjectMarshalError, "failed to marshal booking")
	}

	return types.Put{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}, nil
}

// GetUpdateStatusTransaction guards the transition on the expected source
// status so concurrent writers cannot clobber each other's change.
func (r *bookingRepo) GetUpdateStatusTransaction(ctx context.Context, bookingId string, from, to models.BookingStatus, reason string) types.Update {
	update := types.Update{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.BookingPK(bookingId)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
		UpdateExpression:    aws.String("SET #status = :to, rejection_reason = :reason, updated_at = :now"),
		ConditionExpression: aws.String("#status = :from"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":to":     &types.AttributeValueMemberS{Value: string(to)},
			":from":   &types.AttributeValueMemberS{Value: string(from)},
			":reason": &types.AttributeValueMemberS{Value: reason},
			":now":    &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
	}

	return update
}

func (r *bookingRepo) GetUpdatePaymentStatusTransaction(ctx context.Context, bookingId string, to models.PaymentStatus) types.Update {
	return types.Update{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.BookingPK(bookingId)},
			"SK": &types.AttributeValueMemberS{Value: models.MetaSK()},
		},
		UpdateExpression:    aws.String("SET payment_status = :to, updated_at = :now"),
		ConditionExpression: aws.String("#status = :confirmed AND payment_status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":to":        &types.AttributeValueMemberS{Value: string(to)},
			":confirmed": &types.AttributeValueMemberS{Value: string(models.BookingStatusConfirmed)},
			":pending":   &types.AttributeValueMemberS{Value: string(models.PaymentStatusPending)},
			":now":       &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
	}
}
