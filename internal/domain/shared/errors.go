package shared

import "errors"

// Domain-specific errors
var (
	// Backend error categories, assigned from the backend's error text
	ErrDatabaseConnection = errors.New("database connection error")
	ErrInternalServer     = errors.New("internal server error")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrRequestFailed      = errors.New("request failed")

	// Transport errors
	ErrRequestCanceled = errors.New("request canceled")
	ErrRequestTimedOut = errors.New("request timed out")
	ErrBackendOffline  = errors.New("cannot connect to backend")

	// Payload errors
	ErrUnexpectedPayload = errors.New("unexpected response payload")

	// Auction errors
	ErrAuctionIDRequired    = errors.New("auction id is required")
	ErrAuctionNotActive     = errors.New("auction is not accepting bids")
	ErrBidAmountInvalid     = errors.New("bid amount must be greater than 0")
	ErrBidAmountTooLow      = errors.New("bid amount must be higher than the current price")
	ErrTitleRequired        = errors.New("title is required")
	ErrDescriptionRequired  = errors.New("description is required")
	ErrCategoryRequired     = errors.New("category is required")
	ErrInvalidStartingPrice = errors.New("starting price must be greater than 0")
	ErrInvalidReservePrice  = errors.New("reserve price cannot be lower than the starting price")
	ErrInvalidDuration      = errors.New("duration must be between 1 and 30 days")
	ErrUnknownWizardStep    = errors.New("unknown wizard step")

	// Session errors
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrTokenMissing          = errors.New("login response did not include a token")
	ErrSellerAccountRequired = errors.New("a seller account is required")

	// Image errors
	ErrImageTypeNotAllowed = errors.New("invalid file type. Allowed types: JPEG, PNG, GIF, WebP")
	ErrImageTooLarge       = errors.New("file size exceeds 5MB limit")
	ErrImageFileRequired   = errors.New("image file is required")
	ErrImageIDsRequired    = errors.New("at least one image id is required")
)
