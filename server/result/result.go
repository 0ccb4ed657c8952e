// Package result contains the Result type used to write out wire-protocol
// responses: a deferred HTTP status/body pair that an endpoint builds and
// returns, and the API layer writes out once, after logging it.
package result

import (
	"fmt"
	"net/http"
)

// Text returns a Result writing body out as plain text, for the GGP wire
// protocol's non-JSON response bodies. If additional values are provided
// they are given to internalMsg as a format string.
func Text(status int, body string, internalMsg ...interface{}) Result {
	internalMsgFmt := "OK"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}

	return Result{
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsgFmt, msgArgs...),
		resp:        body,
	}
}

// TextErr is like Text but marks the Result as an error response, so the
// API layer logs it at error level instead of info. If additional values
// are provided they are given to internalMsg as a format string.
func TextErr(status int, userMsg, internalMsg string, v ...interface{}) Result {
	msg := fmt.Sprintf(internalMsg, v...)
	return Result{
		IsErr:       true,
		Status:      status,
		InternalMsg: msg,
		resp:        userMsg,
	}
}

// Result is the value an endpoint returns instead of writing directly to an
// http.ResponseWriter, so the API layer can log it before it is written.
type Result struct {
	Status      int
	IsErr       bool
	InternalMsg string

	resp interface{}
	hdrs [][2]string
}

// WithHeader returns a copy of r with the given header appended. Headers
// are applied last, after WriteResponse sets its own Content-Type, so a
// caller can use WithHeader to override it.
func (r Result) WithHeader(name, val string) Result {
	rCopy := r
	rCopy.hdrs = append(append([][2]string{}, r.hdrs...), [2]string{name, val})
	return rCopy
}

// WriteResponse writes r's status, headers, and body to w.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.Status)
	fmt.Fprintf(w, "%v", r.resp)
}
