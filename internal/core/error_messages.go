package core

// # Error Codes Reference
//
// This file maps technical errors to user-friendly messages with codes for
// support reference. Codes are grouped by category:
//
//	VAL001 - Item required: the item name was empty
//	         Action: Enter an item name
//	VAL002 - Invalid number: price or quantity is not a number
//	         Action: Enter price and quantity as plain numbers, e.g. 4.50
//	TBL001 - Table not found: the table session expired or never existed
//	         Action: Reload the page to start a new table
//	REQ001 - Invalid request: the request body or a parameter was malformed
//	         Action: Check the request and try again
//	REQ002 - Request cancelled
//	REQ003 - Request timeout
//	AUTH001/AUTH002 - Missing or invalid API key
//	RATE001 - Rate limited: too many requests
//	ERR000 - Unknown error: fallback when nothing else matches
//
// Typed errors (*ValidationError, ErrTableNotFound) are matched first with
// errors.As / errors.Is. Anything else falls through to case-insensitive
// substring patterns; the first matching pattern wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgItemRequired = UserMessage{
		Message: "Item name is required",
		Action:  "Enter an item name",
		Code:    "VAL001",
	}
	msgInvalidNumber = UserMessage{
		Message: "Price and quantity must be numbers",
		Action:  "Enter price and quantity as plain numbers, e.g. 4.50",
		Code:    "VAL002",
	}
	msgTableNotFound = UserMessage{
		Message: "This table no longer exists",
		Action:  "Reload the page to start a new table",
		Code:    "TBL001",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// More specific patterns must come before general ones.
var errorPatterns = []errorPattern{
	{pattern: "required field", msg: msgItemRequired},
	{pattern: "invalid number", msg: msgInvalidNumber},
	{pattern: "table not found", msg: msgTableNotFound},
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "The request was malformed",
			Action:  "Check the request and try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ003",
		},
	},
	{
		pattern: "missing api key",
		msg: UserMessage{
			Message: "An API key is required",
			Action:  "Send your key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "The API key was not accepted",
			Action:  "Check the key and try again",
			Code:    "AUTH002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or reload the page",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		if ve.Field == FieldItem {
			return msgItemRequired
		}
		return msgInvalidNumber
	}
	if errors.Is(err, ErrTableNotFound) {
		return msgTableNotFound
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
