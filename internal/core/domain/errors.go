package domain

import "errors"

// Auth / account errors.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already in use")
	ErrUsernameTaken     = errors.New("username already in use")
	ErrTelegramTaken     = errors.New("telegram id already in use")
	ErrUserExists        = errors.New("user already exists")
	ErrEmailNotVerified  = errors.New("email not verified")
	ErrEmailVerified     = errors.New("email already verified")
	ErrVerifyToken       = errors.New("invalid or expired verification token")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("invalid token")
	ErrPasswordMismatch  = errors.New("wrong password")
	ErrSamePassword      = errors.New("new password matches the current one")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrForbidden         = errors.New("access forbidden")
)

// Catalogue errors.
var (
	ErrContentNotFound  = errors.New("content not found")
	ErrContentExists    = errors.New("content already exists")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrGenreExists      = errors.New("genre already exists")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCommentMismatch  = errors.New("parent comment belongs to different content")
	ErrRatingNotFound   = errors.New("rating not found")
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrBookmarkExists   = errors.New("bookmark already exists")
)

// Person catalogue errors.
var (
	ErrPersonNotFound        = errors.New("person not found")
	ErrPersonExists          = errors.New("person already exists")
	ErrPersonInUse           = errors.New("person is credited in content")
	ErrPersonRoleNotFound    = errors.New("person role not found")
	ErrPersonRoleExists      = errors.New("person role already exists")
	ErrCommentRatingNotFound = errors.New("comment rating not found")
)
