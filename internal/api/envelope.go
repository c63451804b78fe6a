package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion identifies the response envelope layout. Clients check
// this before parsing the rest of the body, so the field name must stay
// exactly "v".
const EnvelopeVersion = 1

// Envelope wraps every API response body.
type Envelope struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps huma response bodies in the versioned envelope.
// Success bodies land under "data"; errors are flattened to a string plus
// an optional machine-readable code and details.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		env := &Envelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   apiErr.Message,
		}
		if apiErr.Code != "" {
			env.Code = apiErr.Code
			env.Message = apiErr.Message
			env.Details = apiErr.Details
		}
		return env, nil
	}

	if err, ok := v.(error); ok {
		return &Envelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	return &Envelope{
		Version: EnvelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}

// IDInput is a path parameter for resource IDs.
type IDInput struct {
	ID string `path:"id" doc:"Resource identifier"`
}

// MessageResponse is a simple success message response.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps a message response for huma.
type MessageOutput struct {
	Body MessageResponse
}
