package utils

import (
	"encoding/json"
	"io"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(w io.Writer, message string, data interface{}) error {
	return writeResponse(w, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(w io.Writer, message string, data interface{}, err error) error {
	response := APIResponse{
		Success: false,
		Message: message,
		Data:    data,
	}

	if err != nil {
		response.Error = err.Error()
	}

	return writeResponse(w, response)
}

func writeResponse(w io.Writer, response APIResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(response)
}
