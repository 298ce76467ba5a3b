package services

import "errors"

// Service errors, grouped by how handlers map them: validation (400),
// not found (404), forbidden (403), conflict (409).
var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidLatitude     = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude    = errors.New("longitude must be between -180 and 180")
	ErrInvalidRadius       = errors.New("radius must be greater than zero")
	ErrReasonRequired      = errors.New("reason is required")
	ErrInvalidReviewAction = errors.New("action must be approve or reject")

	ErrIssueNotFound   = errors.New("issue not found")
	ErrFlagNotFound    = errors.New("flag not found")
	ErrRequestNotFound = errors.New("status request not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrForbidden = errors.New("not authorized to modify this issue")
	ErrAdminOnly = errors.New("admin access required")

	ErrAlreadyFlagged  = errors.New("issue already flagged by this user")
	ErrAlreadyReviewed = errors.New("status request already reviewed")

	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)
