package data

import "net/http"

type HTTPRequester interface {
	Do(*http.Request) (*http.Response, error)
}
