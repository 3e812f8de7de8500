package serverutils

// BaseResponse is the envelope of every JSON response
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) BaseResponse[any] {
	return BaseResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}
