package domain

import "time"

const (
	RoleUser     = "user"
	RoleAdmin    = "admin"
	RoleBusiness = "business"
)

// KYC verification levels. Higher levels unlock higher transaction limits.
const (
	KYCUnverified = 0
	KYCBasic      = 1
	KYCAdvanced   = 2
	KYCFull       = 3
)

type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	FullName     string    `json:"full_name" dynamodbav:"full_name"`
	Phone        string    `json:"phone" dynamodbav:"phone"`
	KYCLevel     int       `json:"kyc_level" dynamodbav:"kyc_level"`
	Role         string    `json:"role" dynamodbav:"role"`
	Verified     bool      `json:"is_verified" dynamodbav:"is_verified"`
	Active       bool      `json:"is_active" dynamodbav:"is_active"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" dynamodbav:"updated_at"`
}
