package types

import "net/http"

// KindForStatus maps a non-2xx HTTP status from an upstream API to an ErrorKind
func KindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusNotFound, http.StatusGone:
		return KindNotFound
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return KindTransient
	default:
		return KindUpstream
	}
}
