package core

// errors.go maps technical errors to user-facing messages with a code that
// users can quote to support.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large         Patterns: "file too large"
//	FILE002 - Invalid CSV            Patterns: "invalid csv"
//	FILE003 - Invalid spreadsheet    Patterns: "invalid spreadsheet"
//	FILE004 - No file                Patterns: "no file provided"
//	FILE005 - No usable data         Patterns: "no usable data"
//	FILE006 - Unsupported format     Patterns: "unsupported file format"
//
// # Analysis Errors (ANL001-ANL099)
//
//	ANL001 - System busy             Patterns: "too many analyses"
//	ANL002 - Analysis timed out      Patterns: "analysis timed out", "context deadline exceeded"
//
// # Report Errors (RPT001-RPT099)
//
//	RPT001 - Not configured          Patterns: "report service not configured"
//	RPT002 - Context missing         Patterns: "report context missing"
//	RPT003 - Model key rejected      Patterns: "api key invalid or quota exceeded"
//	RPT004 - Model rate limited      Patterns: "model rate limited"
//	RPT005 - Unusable model reply    Patterns: "empty response from model", "failed to parse model response", "report synthesis failed"
//
// # Auth, Rate and Request Errors
//
//	AUTH001 - API key required       Patterns: "api key required"
//	AUTH002 - Invalid API key        Patterns: "invalid api key"
//	RATE001 - Rate limited           Patterns: "rate limit"
//	REQ001  - Bad request body       Patterns: "invalid request body"
//	REQ002  - Request cancelled      Patterns: "context canceled"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the logs for the technical error.
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns precede general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Export fewer rows or remove unused columns",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid delimited text file",
			Action:  "Re-export the report as CSV or XLSX",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid spreadsheet",
		msg: UserMessage{
			Message: "File could not be read as a workbook",
			Action:  "Open the file in Excel and save it again as .xlsx",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose an inventory export to analyze",
			Code:    "FILE004",
		},
	},
	{
		pattern: "no usable data",
		msg: UserMessage{
			Message: "The file has no data rows",
			Action:  "Check that the export contains a header row and at least one item",
			Code:    "FILE005",
		},
	},
	{
		pattern: "unsupported file format",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Upload a .csv, .tsv, .txt or .xlsx file",
			Code:    "FILE006",
		},
	},

	// Analysis errors
	{
		pattern: "too many analyses",
		msg: UserMessage{
			Message: "System is busy analyzing other files",
			Action:  "Please wait a moment and try again",
			Code:    "ANL001",
		},
	},
	{
		pattern: "analysis timed out",
		msg: UserMessage{
			Message: "Analysis took too long",
			Action:  "Try a smaller export or try again later",
			Code:    "ANL002",
		},
	},

	// Report errors
	{
		pattern: "report service not configured",
		msg: UserMessage{
			Message: "Report generation is not configured on this server",
			Action:  "Ask an administrator to set REPORT_API_KEY",
			Code:    "RPT001",
		},
	},
	{
		pattern: "report context missing",
		msg: UserMessage{
			Message: "No analysis was sent with the report request",
			Action:  "Run an analysis first, then request the report",
			Code:    "RPT002",
		},
	},
	{
		pattern: "api key invalid or quota exceeded",
		msg: UserMessage{
			Message: "The report model rejected the server's credentials",
			Action:  "Ask an administrator to check the model API key and quota",
			Code:    "RPT003",
		},
	},
	{
		pattern: "model rate limited",
		msg: UserMessage{
			Message: "The report model is receiving too many requests",
			Action:  "Please wait a minute and try again",
			Code:    "RPT004",
		},
	},
	{
		pattern: "empty response from model",
		msg: UserMessage{
			Message: "The report model returned an empty reply",
			Action:  "Please try again",
			Code:    "RPT005",
		},
	},
	{
		pattern: "failed to parse model response",
		msg: UserMessage{
			Message: "The report model returned an unreadable reply",
			Action:  "Please try again",
			Code:    "RPT005",
		},
	},
	{
		pattern: "report synthesis failed",
		msg: UserMessage{
			Message: "Report generation failed",
			Action:  "Please try again or run the diagnostic check",
			Code:    "RPT005",
		},
	},

	// Auth errors
	{
		pattern: "api key required",
		msg: UserMessage{
			Message: "API key required",
			Action:  "Send the key in the X-API-Key or Authorization header",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "Invalid API key",
			Action:  "Check the key and try again",
			Code:    "AUTH002",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},

	// Request errors
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Send a JSON body with a context object",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Analysis took too long",
			Action:  "Try a smaller export or try again later",
			Code:    "ANL002",
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
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. Unknown
// errors map to ERR000; nil maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matched a specific pattern.
func IsUserFacing(err error) bool {
	return err != nil && MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error, kept for logging, with its user message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string { return e.User.Message }

func (e *UserError) Unwrap() error { return e.Technical }

// NewUserError maps err. It returns nil for a nil err.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{Technical: err, User: MapError(err)}
}
