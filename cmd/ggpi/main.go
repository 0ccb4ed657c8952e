/*
Ggpi starts an interactive GGP debug session.

It loads a GDL rule file, constructs one search player for a chosen role, and
then lets a human step through get_move/update_moves calls by hand: each STEP
asks the player for its move, prints the other roles' legal actions and
prompts for their moves, and applies the joint; TRUTH and LEGAL print the
current truth set and legal actions on demand. The session ends when the game
reaches a terminal state.

Usage:

	ggpi [flags] RULES_FILE

The flags are:

	-v, --version
		Print the current version and exit.

	-r, --role NAME
		The role to play. Defaults to the first role listed in the ruleset.

	-p, --player NAME
		The player strategy to drive the session: legal, random,
		deliberation, planner, minimax, alphabeta, bounded, montecarlo, or
		mcts. Defaults to "legal".

	-s, --start SECONDS
	-y, --play SECONDS
		Start-clock and play-clock durations, in seconds. Default to 60 and
		15 respectively.

	--seed N
		Seed for the player's RNG. Defaults to 1.

	-d, --direct
		Force reading directly from stdin instead of going through GNU
		readline, even if launched in a TTY.

Once a session starts, type HELP to list REPL commands, or QUIT to exit.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/dekarrin/ggpagent/internal/ggame"
	"github.com/dekarrin/ggpagent/internal/gdl"
	"github.com/dekarrin/ggpagent/internal/input"
	"github.com/dekarrin/ggpagent/internal/player"
	"github.com/dekarrin/ggpagent/internal/search"
	"github.com/dekarrin/ggpagent/internal/term"
	"github.com/dekarrin/ggpagent/internal/version"
)

const (
	ExitSuccess = iota
	ExitSessionError
	ExitInitError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Print the current version and exit")
	roleName    = pflag.StringP("role", "r", "", "The role to play; defaults to the first listed role")
	playerName  = pflag.StringP("player", "p", "legal", "The player strategy to drive the session")
	startSecs   = pflag.IntP("start", "s", 60, "Start-clock duration, in seconds")
	playSecs    = pflag.IntP("play", "y", 15, "Play-clock duration, in seconds")
	seed        = pflag.Int64("seed", 1, "Seed for the player's RNG")
	forceDirect = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "ERROR: exactly one RULES_FILE argument is required")
		returnCode = ExitInitError
		return
	}

	src, err := os.ReadFile(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	game, err := ggame.Create(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	role, err := resolveRole(game, *roleName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	base, err := player.NewBase(game, role, time.Duration(*startSecs)*time.Second, time.Duration(*playSecs)*time.Second, *seed, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	p, err := newPlayer(*playerName, base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	reader, closeReader, err := newReader(*forceDirect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer closeReader()

	sess := &session{game: game, role: role, base: base, player: p, in: reader, out: os.Stdout}
	if err := sess.run(); err != nil && err != io.EOF {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
	}
}

func resolveRole(game *ggame.Game, name string) (term.Term, error) {
	roles := game.Roles()
	if len(roles) == 0 {
		return term.Term{}, fmt.Errorf("ruleset declares no roles")
	}
	if name == "" {
		return roles[0], nil
	}
	for _, r := range roles {
		if r.String() == name {
			return r, nil
		}
	}
	return term.Term{}, fmt.Errorf("no such role %q", name)
}

func newPlayer(name string, base *player.Base) (player.Player, error) {
	switch strings.ToLower(name) {
	case "legal":
		return search.NewLegal(base), nil
	case "random":
		return search.NewRandom(base), nil
	case "deliberation":
		return search.NewCompulsiveDeliberation(base)
	case "planner":
		return search.NewSequentialPlanner(base)
	case "minimax":
		return search.NewMinimax(base), nil
	case "alphabeta":
		return search.NewAlphaBeta(base), nil
	case "bounded":
		return search.NewBoundedDepth(base, -1, search.HeuristicMobility), nil
	case "montecarlo":
		return search.NewMonteCarlo(base, -1, 8), nil
	case "mcts":
		return search.NewMCTS(base)
	default:
		return nil, fmt.Errorf("unknown player %q", name)
	}
}

// lineReader is the subset of input.DirectLineReader / input.InteractiveLineReader
// a session needs.
type lineReader interface {
	ReadLine() (string, error)
}

func newReader(direct bool) (lineReader, func() error, error) {
	if direct {
		r := input.NewDirectReader(os.Stdin)
		return r, r.Close, nil
	}
	r, err := input.NewInteractiveReader()
	if err != nil {
		return nil, nil, err
	}
	return r, r.Close, nil
}

// session holds the running state of one ggpi REPL.
type session struct {
	game   *ggame.Game
	role   term.Term
	base   *player.Base
	player player.Player
	in     lineReader
	out    io.Writer
}

func (s *session) run() error {
	fmt.Fprintf(s.out, "loaded %d role(s), playing as %s\n", len(s.game.Roles()), s.role)
	fmt.Fprintln(s.out, "type HELP for commands")

	for {
		terminal, err := s.base.State.IsTerminal(nil)
		if err != nil {
			return err
		}
		if terminal {
			u, err := s.base.State.Utility(s.role, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "game over; utility for %s = %d\n", s.role, u)
			return nil
		}

		line, err := s.in.ReadLine()
		if err != nil {
			return err
		}

		cmd := strings.ToUpper(strings.Fields(line)[0])
		switch cmd {
		case "QUIT", "EXIT":
			return nil
		case "HELP":
			s.printHelp()
		case "TRUTH":
			s.printTruth()
		case "LEGAL":
			s.printLegal()
		case "STEP":
			if err := s.step(); err != nil {
				fmt.Fprintf(s.out, "error: %s\n", err.Error())
			}
		default:
			fmt.Fprintf(s.out, "unrecognized command %q; type HELP for a list\n", cmd)
		}
	}
}

func (s *session) printHelp() {
	fmt.Fprintln(s.out, "HELP                 show this text")
	fmt.Fprintln(s.out, "TRUTH                print the current truth set")
	fmt.Fprintln(s.out, "LEGAL                print legal actions for every role")
	fmt.Fprintln(s.out, "STEP                 get this player's move, prompt for the rest, and advance")
	fmt.Fprintln(s.out, "QUIT                 exit the session")
}

func (s *session) printTruth() {
	for _, t := range s.base.State.Truth() {
		fmt.Fprintf(s.out, "  %s\n", t)
	}
}

func (s *session) printLegal() {
	for _, r := range s.game.Roles() {
		legal, err := s.base.State.LegalActions(r, nil)
		if err != nil {
			fmt.Fprintf(s.out, "  %s: error: %s\n", r, err.Error())
			continue
		}
		actions := make([]string, len(legal))
		for i, a := range legal {
			actions[i] = a.String()
		}
		fmt.Fprintf(s.out, "  %s: %s\n", r, strings.Join(actions, ", "))
	}
}

// step asks the driven player for its move, prompts the human for every
// other role's move, and advances the held state for both the session and
// the player.
func (s *session) step() error {
	move, err := s.player.GetMove()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s plays %s\n", s.role, move)

	joint := make([]ggame.Move, len(s.game.Roles()))
	for i, r := range s.game.Roles() {
		if r.String() == s.role.String() {
			joint[i] = ggame.Move{Role: r, Action: move}
			continue
		}
		legal, err := s.base.State.LegalActions(r, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "legal actions for %s: %s\n", r, joinTerms(legal))
		fmt.Fprintf(s.out, "enter action for %s (or an index into the list above): ", r)
		line, err := s.in.ReadLine()
		if err != nil {
			return err
		}
		action, err := resolveAction(s.game, legal, line)
		if err != nil {
			return err
		}
		joint[i] = ggame.Move{Role: r, Action: action}
	}

	// the player embeds s.base, so UpdateMoves advances the session's state
	// too
	return s.player.UpdateMoves(joint)
}

func resolveAction(game *ggame.Game, legal []term.Term, input string) (term.Term, error) {
	input = strings.TrimSpace(input)
	if idx, err := strconv.Atoi(input); err == nil {
		if idx < 0 || idx >= len(legal) {
			return term.Term{}, fmt.Errorf("index %d out of range", idx)
		}
		return legal[idx], nil
	}
	return gdl.ParseTerm(game.Interner(), input)
}

func joinTerms(ts []term.Term) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprintf("[%d] %s", i, t)
	}
	return strings.Join(parts, "  ")
}
