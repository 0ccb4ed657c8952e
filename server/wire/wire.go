// Package wire parses and renders the GGP match protocol's envelope
// messages: info, start, play, stop, and abort, and their responses. The
// envelope syntax is a thin shell around GDL term syntax -- a top-level
// s-expression whose first symbol names the message -- so parsing it uses a
// small paren-balancing splitter of its own (splitTopLevel), written in the
// style of internal/gdl's tokenizer, and hands each action to gdl.ParseTerm.
package wire

import (
	"strconv"
	"strings"

	"github.com/dekarrin/ggpagent/internal/gdl"
	"github.com/dekarrin/ggpagent/internal/ggerrors"
	"github.com/dekarrin/ggpagent/internal/term"
)

// Kind identifies which of the five request shapes an Envelope carries.
type Kind int

const (
	Info Kind = iota
	Start
	Play
	Stop
	Abort
)

func (k Kind) String() string {
	switch k {
	case Info:
		return "info"
	case Start:
		return "start"
	case Play:
		return "play"
	case Stop:
		return "stop"
	case Abort:
		return "abort"
	default:
		return "unknown"
	}
}

// Envelope is a parsed request body. Which fields are populated depends on
// Kind: Start sets GameID/Role/Rules/StartClock/PlayClock, Play and Stop set
// GameID and JointRaw (nil for the literal "nil"), Abort sets only GameID.
//
// JointRaw holds each action's raw GDL text rather than a parsed term.Term:
// an action term is only meaningful against the interner of the game it
// belongs to, and the envelope is parsed before the game-id has been looked
// up against the match registry. Callers resolve it with ParseActions once
// they have that interner.
type Envelope struct {
	Kind       Kind
	GameID     string
	Role       string
	Rules      string // raw GDL source extracted from the RULES argument
	StartClock int
	PlayClock  int
	JointRaw   []string // nil means the wire value was the atom "nil"
}

// malformed wraps msg as a ggerrors.Error of kind KindMalformedGDL, the kind
// the driver maps to HTTP 400.
func malformed(format string, a ...interface{}) error {
	return ggerrors.Newf(ggerrors.KindMalformedGDL, format, a...)
}

// Parse decodes one request body into an Envelope.
func Parse(body string) (Envelope, error) {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
		return Envelope{}, malformed("request body must be a single parenthesized s-expression")
	}
	inner := body[1 : len(body)-1]
	toks, err := splitTopLevel(inner)
	if err != nil {
		return Envelope{}, err
	}
	if len(toks) == 0 {
		return Envelope{}, malformed("empty message")
	}

	switch strings.ToLower(toks[0]) {
	case "info":
		return Envelope{Kind: Info}, nil
	case "start":
		return parseStart(toks)
	case "play":
		return parsePlayOrStop(Play, toks)
	case "stop":
		return parsePlayOrStop(Stop, toks)
	case "abort":
		if len(toks) != 2 {
			return Envelope{}, malformed("(abort GAME_ID) requires exactly 1 argument, got %d", len(toks)-1)
		}
		return Envelope{Kind: Abort, GameID: toks[1]}, nil
	default:
		return Envelope{}, malformed("unrecognized message type %q", toks[0])
	}
}

// ParseActions resolves each raw action string in raw against in, the
// interner of the game the joint move belongs to.
func ParseActions(in *term.Interner, raw []string) ([]term.Term, error) {
	actions := make([]term.Term, 0, len(raw))
	for _, a := range raw {
		t, err := gdl.ParseTerm(in, a)
		if err != nil {
			return nil, err
		}
		actions = append(actions, t)
	}
	return actions, nil
}

func parseStart(toks []string) (Envelope, error) {
	if len(toks) != 6 {
		return Envelope{}, malformed("(start GAME_ID ROLE RULES START_CLK PLAY_CLK) requires exactly 5 arguments, got %d", len(toks)-1)
	}
	rulesTok := toks[3]
	if !strings.HasPrefix(rulesTok, "(") || !strings.HasSuffix(rulesTok, ")") {
		return Envelope{}, malformed("RULES argument must be a parenthesized list of statements")
	}
	startClk, err := strconv.Atoi(toks[4])
	if err != nil {
		return Envelope{}, malformed("START_CLK must be an integer, got %q", toks[4])
	}
	playClk, err := strconv.Atoi(toks[5])
	if err != nil {
		return Envelope{}, malformed("PLAY_CLK must be an integer, got %q", toks[5])
	}
	return Envelope{
		Kind:       Start,
		GameID:     toks[1],
		Role:       toks[2],
		Rules:      rulesTok[1 : len(rulesTok)-1],
		StartClock: startClk,
		PlayClock:  playClk,
	}, nil
}

func parsePlayOrStop(kind Kind, toks []string) (Envelope, error) {
	if len(toks) != 3 {
		return Envelope{}, malformed("(%s GAME_ID JOINT) requires exactly 2 arguments, got %d", kind, len(toks)-1)
	}
	env := Envelope{Kind: kind, GameID: toks[1]}
	if strings.EqualFold(toks[2], "nil") {
		return env, nil
	}
	jointTok := toks[2]
	if !strings.HasPrefix(jointTok, "(") || !strings.HasSuffix(jointTok, ")") {
		return Envelope{}, malformed("JOINT argument must be %q or a parenthesized list of actions", "nil")
	}
	actionToks, err := splitTopLevel(jointTok[1 : len(jointTok)-1])
	if err != nil {
		return Envelope{}, err
	}
	env.JointRaw = actionToks
	return env, nil
}

// splitTopLevel splits src on whitespace, treating a balanced run of
// parentheses as a single token regardless of internal whitespace. It
// mirrors internal/gdl/lexer.go's character-class-driven scan rather than a
// regexp, since the grammar is the same.
func splitTopLevel(src string) ([]string, error) {
	var toks []string
	i, n := 0, len(src)
	for i < n {
		for i < n && isSpace(src[i]) {
			i++
		}
		if i >= n {
			break
		}
		if src[i] == '(' {
			start := i
			depth := 0
			for i < n {
				switch src[i] {
				case '(':
					depth++
				case ')':
					depth--
				}
				i++
				if depth == 0 {
					break
				}
			}
			if depth != 0 {
				return nil, malformed("unterminated '(' in message")
			}
			toks = append(toks, src[start:i])
			continue
		}
		start := i
		for i < n && !isSpace(src[i]) && src[i] != '(' && src[i] != ')' {
			i++
		}
		toks = append(toks, src[start:i])
	}
	return toks, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// InfoResponse renders the "(info)" reply body.
func InfoResponse(name string, busy bool) string {
	status := "available"
	if busy {
		status = "busy"
	}
	return "((name " + name + ") (status " + status + "))"
}
