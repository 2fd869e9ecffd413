package http

import (
	"net/http"

	"github.com/roadwatch/roadwatch/internal/service"
)

var loginStatusMap = map[service.LoginCode]int{
	service.CodeInvalidCredentials: http.StatusUnauthorized,
	service.CodeAccountLocked:      http.StatusLocked,
	service.CodeNetworkError:       http.StatusBadGateway,
	service.CodeUnknownError:       http.StatusInternalServerError,
}

func statusFromLoginCode(code service.LoginCode) int {
	if status, ok := loginStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// loginErrorToBody builds the wire error. The message is deliberately
// generic for locked accounts, regardless of how the lock was reached.
func loginErrorToBody(loginErr *service.LoginError) *loginErrorBody {
	body := &loginErrorBody{
		Code:              string(loginErr.Code),
		RemainingAttempts: loginErr.RemainingAttempts,
		IsLocked:          loginErr.Code == service.CodeAccountLocked,
	}

	switch loginErr.Code {
	case service.CodeAccountLocked:
		body.Message = "account is locked, contact support to restore access"
	case service.CodeInvalidCredentials:
		body.Message = "invalid email or password"
	case service.CodeNetworkError:
		body.Message = "could not reach the authentication service"
	default:
		body.Message = "something went wrong, try again later"
	}
	return body
}
