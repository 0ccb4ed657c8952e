// Package server wires the match service into an HTTP driver speaking the
// GGP wire protocol: one route, POST "/", dispatching on the envelope's
// message kind.
package server

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/internal/term"
	"github.com/dekarrin/ggpagent/server/api"
	"github.com/dekarrin/ggpagent/server/match"
	"github.com/dekarrin/ggpagent/server/middle"
	"github.com/dekarrin/ggpagent/server/result"
	"github.com/dekarrin/ggpagent/server/wire"
)

// Server is the GGP HTTP driver: a router dispatching onto a match.Service.
type Server struct {
	Name string

	router *chi.Mux
	svc    *match.Service
	api    api.API
}

// New builds a Server that answers as name and sequences matches through
// svc.
func New(name string, svc *match.Service, log *zap.Logger) *Server {
	s := &Server{
		Name: name,
		svc:  svc,
		api:  api.API{Log: log},
	}

	r := chi.NewRouter()
	r.Use(middle.AccessLog(log))
	r.Post("/", s.api.HTTPEndpoint(s.handle))
	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// handle dispatches the single POST route across the five wire messages.
// Every response carries text/acl content type (set by withCORS) and an
// open CORS policy, since a GGP match driver is queried cross-origin by
// tournament managers running in the browser.
func (s *Server) handle(req *http.Request, log *zap.Logger) result.Result {
	if req.ContentLength < 0 {
		return withCORS(result.TextErr(http.StatusLengthRequired, "Content-Length is required", "missing content-length"))
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return withCORS(result.TextErr(http.StatusBadRequest, "could not read request body", "read body: %v", err))
	}

	env, err := wire.Parse(string(body))
	if err != nil {
		return withCORS(errResult(err, "parse envelope"))
	}

	log.Debug("received message", zap.String("kind", env.Kind.String()), zap.String("game_id", env.GameID))

	switch env.Kind {
	case wire.Info:
		return withCORS(result.Text(http.StatusOK, wire.InfoResponse(s.Name, s.svc.Busy()), "info"))
	case wire.Start:
		return withCORS(s.handleStart(env))
	case wire.Play:
		return withCORS(s.handlePlay(env))
	case wire.Stop:
		return withCORS(s.handleStop(env))
	case wire.Abort:
		return withCORS(s.handleAbort(env))
	default:
		return withCORS(result.TextErr(http.StatusBadRequest, "unrecognized message", "unrecognized kind %v", env.Kind))
	}
}

func (s *Server) handleStart(env wire.Envelope) result.Result {
	startClock := time.Duration(env.StartClock) * time.Second
	playClock := time.Duration(env.PlayClock) * time.Second

	if err := s.svc.Start(env.GameID, env.Role, env.Rules, startClock, playClock); err != nil {
		return errResult(err, "start %s", env.GameID)
	}
	return result.Text(http.StatusOK, "ready", "started %s", env.GameID)
}

func (s *Server) handlePlay(env wire.Envelope) result.Result {
	joint, err := s.resolveJoint(env)
	if err != nil {
		return errResult(err, "play %s", env.GameID)
	}

	action, err := s.svc.Play(env.GameID, joint)
	if err != nil {
		return errResult(err, "play %s", env.GameID)
	}
	return result.Text(http.StatusOK, action.String(), "played %s", env.GameID)
}

func (s *Server) handleStop(env wire.Envelope) result.Result {
	joint, err := s.resolveJoint(env)
	if err != nil {
		return errResult(err, "stop %s", env.GameID)
	}

	if err := s.svc.Stop(env.GameID, joint); err != nil {
		return errResult(err, "stop %s", env.GameID)
	}
	return result.Text(http.StatusOK, "done", "stopped %s", env.GameID)
}

func (s *Server) handleAbort(env wire.Envelope) result.Result {
	if err := s.svc.Abort(env.GameID); err != nil {
		return errResult(err, "abort %s", env.GameID)
	}
	return result.Text(http.StatusOK, "done", "aborted %s", env.GameID)
}

// resolveJoint parses a play/stop envelope's raw action strings against the
// interner of the match they are addressed to, since an action term is
// only meaningful relative to the interner that built it. It returns a
// nil slice, nil error for the wire's "nil" JOINT (first play of a match).
func (s *Server) resolveJoint(env wire.Envelope) ([]term.Term, error) {
	if env.JointRaw == nil {
		return nil, nil
	}
	m, err := s.svc.Registry.Get(env.GameID)
	if err != nil {
		return nil, err
	}
	return wire.ParseActions(m.Game.Interner(), env.JointRaw)
}

func withCORS(r result.Result) result.Result {
	return r.WithHeader("Access-Control-Allow-Origin", "*").
		WithHeader("Content-Type", "text/acl")
}

// errResult maps a ggerrors.Kind to its corresponding HTTP status.
func errResult(err error, msgFmt string, a ...interface{}) result.Result {
	status := http.StatusInternalServerError
	switch {
	case ggerrors.Is(err, ggerrors.KindMalformedGDL),
		ggerrors.Is(err, ggerrors.KindStratificationViolated),
		ggerrors.Is(err, ggerrors.KindArityMismatch),
		ggerrors.Is(err, ggerrors.KindRecursionLimit):
		status = http.StatusBadRequest
	case ggerrors.Is(err, ggerrors.KindUnknownGameID),
		ggerrors.Is(err, ggerrors.KindDuplicateGameID):
		status = http.StatusForbidden
	case ggerrors.Is(err, ggerrors.KindIllegalMove),
		ggerrors.Is(err, ggerrors.KindInternalReasoner):
		status = http.StatusInternalServerError
	}
	return result.TextErr(status, err.Error(), msgFmt+": %v", append(a, err)...)
}
