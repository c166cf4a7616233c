package services

import (
	"errors"

	"chatadmin/internal/common"
)

// userMessage picks the text surfaced to the user for a failed request:
// the server's own detail when it sent one, otherwise the generic fallback.
func userMessage(err error, fallback string) string {
	var re *common.RemoteError
	if errors.As(err, &re) && re.Detail != "" {
		return re.Detail
	}
	return fallback
}
