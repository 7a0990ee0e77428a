/*
   Copyright 2024 Joseph Cumines

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// dptdemo renders a small, ticking plan tree to a terminal screen, so the
// tick algorithm's transition firing and status propagation can be watched
// live rather than read off a test assertion.
package main

import (
	"context"
	"flag"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	dpt "github.com/joeycumines/go-dpt"
)

func main() {
	os.Exit(run(os.Args[0], os.Args[1:]))
}

func run(cmd string, args []string) (exitCode int) {
	var (
		flags   = flag.NewFlagSet(cmd, flag.ContinueOnError)
		logfile stringFlag
		period  time.Duration
	)
	flags.Var(&logfile, `logfile`, `write log output to file`)
	flags.DurationVar(&period, `period`, time.Millisecond*200, `tick period`)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 0 {
		log.Printf("expected no args\n")
		flags.Usage()
		return 1
	}

	if logfile != `` {
		f, err := os.OpenFile(string(logfile), os.O_WRONLY|os.O_APPEND|os.O_CREATE, os.ModePerm)
		if err != nil {
			log.Printf("logfile open error: %s\n", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(ioutil.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	{
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, os.Kill)
		defer signal.Stop(signals)
		go signalHandler(ctx, cancel, signals)
	}

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		log.Printf(`screen init error: %s`, err)
		return 1
	}
	defer screen.Fini()

	root := demoPlan()
	root.Enter(ctx)
	defer root.Exit(false)

	events := make(chan tcell.Event, 16)
	go screen.ChannelEvents(events, ctx.Done())

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return 0
				case tcell.KeyRune:
					if ev.Rune() == 'q' {
						return 0
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			if err := root.Run(ctx); err != nil {
				log.Printf("tick error: %s\n", err)
				if logfile == `` {
					log.SetOutput(os.Stderr)
				}
				return 1
			}
			render(screen, root)
		}
	}
}

func signalHandler(ctx context.Context, cancel context.CancelFunc, signals <-chan os.Signal) {
	select {
	case <-ctx.Done():
	case <-signals:
		cancel()
	}
}

func render(screen tcell.Screen, root *dpt.Plan) {
	screen.Clear()
	style := tcell.StyleDefault
	for y, line := range strings.Split(root.String(), "\n") {
		for x, r := range line {
			screen.SetContent(x, y, r, nil, style)
		}
	}
	screen.Show()
}

// demoPlan builds a three-plan cycle: A, B, C advance in order, each
// succeeding after a fixed number of ticks, driven entirely by
// transitions rather than a composite behaviour.
func demoPlan() *dpt.Plan {
	root := dpt.NewStub(`root`, true)
	root.Insert(dpt.New(`A`, &countdownBehaviour{target: 3}, 1, true))
	root.Insert(dpt.New(`B`, &countdownBehaviour{target: 3}, 1, false))
	root.Insert(dpt.New(`C`, &countdownBehaviour{target: 3}, 1, false))
	root.SetTransitions([]dpt.Transition{
		dpt.NewTransition([]string{`A`}, []string{`B`}, succeeded(`A`)),
		dpt.NewTransition([]string{`B`}, []string{`C`}, succeeded(`B`)),
		dpt.NewTransition([]string{`C`}, []string{`A`}, succeeded(`C`)),
	})
	return root
}

func succeeded(name string) dpt.Predicate {
	return predicateFunc(func(plan *dpt.Plan, _ []string) bool {
		sub, ok := plan.Get(name)
		return ok && sub.Status() == dpt.Success
	})
}

type predicateFunc func(plan *dpt.Plan, src []string) bool

func (f predicateFunc) Evaluate(plan *dpt.Plan, src []string) bool { return f(plan, src) }

// countdownBehaviour succeeds once it has been run target times since its
// last OnEntry, then holds Success until re-entered.
type countdownBehaviour struct {
	dpt.BaseBehaviour
	target  int
	ticks   int
	succeed bool
}

func (c *countdownBehaviour) OnEntry(*dpt.Plan) { c.ticks, c.succeed = 0, false }

func (c *countdownBehaviour) OnRun(*dpt.Plan) {
	if c.succeed {
		return
	}
	c.ticks++
	if c.ticks >= c.target {
		c.succeed = true
	}
}

func (c *countdownBehaviour) Status(*dpt.Plan) dpt.Status {
	if c.succeed {
		return dpt.Success
	}
	return dpt.Running
}

type stringFlag string

func (f stringFlag) String() string { return string(f) }
func (f *stringFlag) Set(s string) error {
	*f = stringFlag(s)
	return nil
}
