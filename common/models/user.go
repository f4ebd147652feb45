package models

import (
	"fmt"
	"strings"
	"time"
)

type UserRole string

const (
	UserRolePlayer UserRole = "player"
	UserRoleOwner  UserRole = "owner"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

type User struct {
	UserId         string         `dynamodbav:"user_id"`
	DisplayName    string         `dynamodbav:"display_name"`
	Email          string         `dynamodbav:"email"`
	Phone          string         `dynamodbav:"phone"`
	Role           UserRole       `dynamodbav:"role"`
	ApprovalStatus ApprovalStatus `dynamodbav:"approval_status"`
	CreatedAt      time.Time      `dynamodbav:"created_at"`
	UpdatedAt      time.Time      `dynamodbav:"updated_at"`

	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
}

// Key handlers
func UserPK(userID string) string {
	return fmt.Sprintf("USER#%s", userID)
}

func ProfileSK() string {
	return "PROFILE"
}

func ExtractUserID(pk string) (string, error) {
	if !strings.HasPrefix(pk, "USER#") {
		return "", fmt.Errorf("invalid user PK format: %s", pk)
	}
	return strings.TrimPrefix(pk, "USER#"), nil
}

// IsApprovedOwner reports whether the user may access owner management
// operations.
func (u *User) IsApprovedOwner() bool {
	return u.Role == UserRoleOwner && u.ApprovalStatus == ApprovalStatusApproved
}
