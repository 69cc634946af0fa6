package dto

import "time"

// Messages of the two error bodies served by GET /stock_data.
const (
	MsgTickerNotProvided = "Ticker symbol not provided"
	MsgNoData            = "No data available for the specified parameters"
)

// ErrorBody is the error document of GET /stock_data.
//
// It is always served with 200 OK; clients detect failure by the presence of the "error" key.
type ErrorBody struct {
	Message string `json:"error" example:"Ticker symbol not provided"`
}

// NewErrorBody builds an ErrorBody for one of the Msg* constants.
func NewErrorBody(msg string) ErrorBody {
	return ErrorBody{Message: msg}
}

// ErrorResponse is the standardized error payload used by middlewares
// (panic recovery, gin error handler) outside the /stock_data contract.
type ErrorResponse struct {
	Message      string    `json:"message" example:"Internal server error"`
	ErrorDetails string    `json:"error_details,omitempty" example:"runtime error: index out of range"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// The inner error, when present, is exposed as ErrorDetails.
func NewErrorResponse(msg string, err error) ErrorResponse {
	resp := ErrorResponse{Message: msg, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
