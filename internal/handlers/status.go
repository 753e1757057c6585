package handlers

import (
	"net/http"

	"github.com/kotashimizu/care-plan/internal/llm"
	"github.com/kotashimizu/care-plan/internal/services"
)

// statusFor maps the service error taxonomy onto HTTP: bad input gets
// 400, timeouts get their own 504, everything else is a 500 carrying the
// provider or parse message.
func statusFor(err error) (status int, code string) {
	if services.IsInputError(err) {
		return http.StatusBadRequest, "invalid_request"
	}
	switch llm.KindOf(err) {
	case llm.KindTimeout:
		return http.StatusGatewayTimeout, "timeout"
	case llm.KindConfig:
		return http.StatusInternalServerError, "config"
	case llm.KindUpstream:
		return http.StatusInternalServerError, "upstream"
	case llm.KindEmptyReply:
		return http.StatusInternalServerError, "empty_reply"
	case llm.KindMalformed:
		return http.StatusInternalServerError, "malformed_output"
	}
	return http.StatusInternalServerError, "internal"
}
