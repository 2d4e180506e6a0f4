package health

import (
	"github.com/eurodata/site/core/handler"
	"github.com/eurodata/site/core/response"
)

// Liveness reports that the process is serving. It checks no dependency.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ok")
}
