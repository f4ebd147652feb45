package errors

import (
	"fmt"

	apperrors "github.com/farhanms/playfield/common/errors"
)

func SlotAlreadyBookedError(date, timeSlot string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeConflict,
		fmt.Sprintf("slot %s on %s is already booked", timeSlot, date))
}

func SlotNotInTemplateError(weekday, timeSlot string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidInput,
		fmt.Sprintf("slot %s is not offered on %s", timeSlot, weekday))
}

func GroundClosedError() *apperrors.AppError {
	return apperrors.New(apperrors.CodeForbidden, "ground is closed for booking")
}

func DateOutOfWindowError(days int) *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidInput,
		fmt.Sprintf("booking date must be within the next %d days", days))
}

func InvalidTransitionError(from, to string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeConflict,
		fmt.Sprintf("booking cannot go from %s to %s", from, to))
}

func RejectionReasonRequiredError() *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidInput, "rejection reason is required")
}

func NotGroundOwnerError() *apperrors.AppError {
	return apperrors.New(apperrors.CodeForbidden, "only the ground owner may perform this action")
}

func OwnerNotApprovedError() *apperrors.AppError {
	return apperrors.New(apperrors.CodeForbidden, "owner account is not approved")
}

func RatingRangeError() *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidInput, "rating must be between 1 and 5")
}

func InvalidDurationError() *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidInput, "duration must be a positive number of hours")
}
