package errors

// Public error message catalog. These strings are part of the API contract;
// clients match on them, so keep them stable.
const (
	MsgBadRequest    = "Bad request"
	MsgNotFound      = "Not found"
	MsgUnprocessable = "Unprocessable entity"
	MsgInternalError = "Internal server error"
)
