package errors

// User-friendly error messages
const (
	MsgConnectionFailed = "We couldn't reach the server. Check your connection and try again."
	MsgUnauthorized     = "Your session has expired. Please log in again."
	MsgNotFound         = "The requested record could not be found."
	MsgConflict         = "This change conflicts with the current state of the record. Refresh and try again."
	MsgRateLimited      = "You're doing that too quickly! Please wait a moment and try again."
	MsgServerError      = "Something went wrong on our end. Please try again later."
	MsgBadResponse      = "The server returned an unexpected response. Please try again later."
)
