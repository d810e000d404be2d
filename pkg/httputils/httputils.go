package httputils

import (
	"encoding/base64"

	"github.com/autobrr/transmission-cleanup/pkg/runtime"
)

func UserAgent() string {
	return "transmission-cleanup/" + runtime.Version
}

// BasicAuth returns the value of an Authorization header for the given credentials.
func BasicAuth(username string, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
