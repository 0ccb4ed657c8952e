// Package api wires the GGP wire-protocol driver into the chi router: a
// single entry point that generates a request id, binds it into a
// structured logger, recovers from panics, and writes out the result.Result
// the endpoint function returns.
package api

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dekarrin/ggpagent/server/result"
)

// API holds the shared logger used to bind a per-request child logger onto
// every call to an EndpointFunc.
type API struct {
	Log *zap.Logger
}

// EndpointFunc handles one HTTP request and returns the Result to write
// back. log is already bound with this request's correlation id.
type EndpointFunc func(req *http.Request, log *zap.Logger) result.Result

// HTTPEndpoint adapts ep into an http.HandlerFunc: it assigns a request id,
// recovers from panics by converting them into an HTTP-500, and logs and
// writes the returned Result.
func (a API) HTTPEndpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		reqID := uuid.NewString()
		log := a.Log.With(zap.String("request_id", reqID))

		defer panicTo500(w, log)

		r := ep(req, log)

		if r.Status == 0 {
			log.Error("endpoint result was never populated")
			result.TextErr(http.StatusInternalServerError, "internal server error", "unpopulated result").WriteResponse(w)
			return
		}

		logResult(log, req, r)
		r.WriteResponse(w)
	}
}

func logResult(log *zap.Logger, req *http.Request, r result.Result) {
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", r.Status),
	}
	if r.IsErr {
		log.Error(r.InternalMsg, fields...)
	} else {
		log.Info(r.InternalMsg, fields...)
	}
}

func panicTo500(w http.ResponseWriter, log *zap.Logger) {
	if panicVal := recover(); panicVal != nil {
		log.Error("panic in endpoint", zap.Any("panic", panicVal), zap.String("stack", string(debug.Stack())))
		result.TextErr(
			http.StatusInternalServerError,
			"internal server error",
			fmt.Sprintf("panic: %v", panicVal),
		).WriteResponse(w)
	}
}
