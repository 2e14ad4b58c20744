package constants

// Standard Response Field Keys
const (
	ResponseFieldData    = "data"
	ResponseFieldMessage = "message"
	ResponseFieldCode    = "code"
	ResponseFieldDetails = "details"
)

func BuildDataResponse(message string, data any) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
		ResponseFieldData:    data,
	}
}

func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
	}

	if details != nil {
		response[ResponseFieldDetails] = details
	}

	return response
}

// BuildCodedErrorResponse adds the machine-readable error code.
func BuildCodedErrorResponse(code, message string, details any) map[string]any {
	response := BuildErrorResponse(message, details)
	response[ResponseFieldCode] = code
	return response
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
	}
}
