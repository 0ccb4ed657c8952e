// Package fixtures holds small, fully-specified GDL rule sets used across
// package tests: a single-player counter game and a simultaneous
// tic-tac-toe, chosen to exercise recursion, negation, succ/2, and
// multi-role goal resolution without needing a real game database.
package fixtures

import (
	"fmt"
	"strings"
)

// ButtonsAndLights is a single-player, seven-step game. Action a is
// legal every turn; once played, base proposition p stays true forever
// (sticky), while q reflects only whether the most recent move was a.
// The game terminates at step 7, with the robot scoring 100 if the last
// move it played was a, 0 otherwise.
func ButtonsAndLights() string {
	return `
(role robot)

(init (step 1))

(<= (legal robot a) (true (step ?x)))
(<= (legal robot b) (true (step ?x)))
(<= (legal robot c) (true (step ?x)))

(<= (next (step ?y)) (true (step ?x)) (succ ?x ?y))
(<= (next p) (does robot a))
(<= (next p) (true p))
(<= (next q) (does robot a))
(<= (next r) (true (step 6)))

(<= terminal (true (step 7)))

(<= (goal robot 100) (true q))
(<= (goal robot 0) (not (true q)))

(base (step 1)) (base (step 2)) (base (step 3)) (base (step 4))
(base (step 5)) (base (step 6)) (base (step 7))
(base p) (base q) (base r)

(input robot a) (input robot b) (input robot c)
`
}

// TicTacToe is a simultaneous-move variant: both white and black mark a
// cell every round (white marks x, black marks o). It terminates when
// either mark completes a row, column, or diagonal, or step 7 is
// reached. Goal is 100/0 for the line-completing role (and its
// opponent), 50/50 if nobody has completed a line.
func TicTacToe() string {
	var b strings.Builder
	b.WriteString(`
(role white)
(role black)

(mark_of white x)
(mark_of black o)

(init (step 1))
`)
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			fmt.Fprintf(&b, "(init (cell %d %d b))\n", i, j)
		}
	}

	b.WriteString(`
(<= (legal ?r (mark ?i ?j)) (role ?r) (true (cell ?i ?j b)))

(<= (next (cell ?i ?j ?m))
    (does ?r (mark ?i ?j))
    (mark_of ?r ?m))
(<= (next (cell ?i ?j ?m))
    (true (cell ?i ?j ?m))
    (distinct ?m b)
    (not (does_mark_here ?i ?j)))
(<= (next (cell ?i ?j b))
    (true (cell ?i ?j b))
    (not (does_mark_here ?i ?j)))

(<= (does_mark_here ?i ?j) (does ?r (mark ?i ?j)))

(<= (next (step ?y)) (true (step ?x)) (succ ?x ?y))
`)

	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&b, "(<= (row ?m) (true (cell %d 1 ?m)) (true (cell %d 2 ?m)) (true (cell %d 3 ?m)) (distinct ?m b))\n", i, i, i)
	}
	for j := 1; j <= 3; j++ {
		fmt.Fprintf(&b, "(<= (col ?m) (true (cell 1 %d ?m)) (true (cell 2 %d ?m)) (true (cell 3 %d ?m)) (distinct ?m b))\n", j, j, j)
	}
	b.WriteString(`
(<= (diag ?m) (true (cell 1 1 ?m)) (true (cell 2 2 ?m)) (true (cell 3 3 ?m)) (distinct ?m b))
(<= (diag ?m) (true (cell 1 3 ?m)) (true (cell 2 2 ?m)) (true (cell 3 1 ?m)) (distinct ?m b))

(<= (line ?m) (row ?m))
(<= (line ?m) (col ?m))
(<= (line ?m) (diag ?m))
(<= anyline (line ?m))

(<= terminal (line ?m))
(<= terminal (true (step 7)))

(<= (goal ?r 100) (mark_of ?r ?m) (line ?m))
(<= (goal ?r 0) (mark_of ?r ?m) (not (line ?m)) anyline)
(<= (goal ?r 50) (role ?r) (not anyline))

(base (step 1)) (base (step 2)) (base (step 3)) (base (step 4))
(base (step 5)) (base (step 6)) (base (step 7))
`)
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			fmt.Fprintf(&b, "(base (cell %d %d x)) (base (cell %d %d o)) (base (cell %d %d b))\n", i, j, i, j, i, j)
		}
	}
	for _, r := range []string{"white", "black"} {
		for i := 1; i <= 3; i++ {
			for j := 1; j <= 3; j++ {
				fmt.Fprintf(&b, "(input %s (mark %d %d))\n", r, i, j)
			}
		}
	}
	return b.String()
}
