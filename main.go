/*
This is an example application that uses the engine package to load a
scene and draw it through the headless device backend.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/vetro/engine"
	"github.com/spaghettifunk/vetro/engine/renderer"
	"github.com/spaghettifunk/vetro/testbed"
)

func main() {
	tb, err := testbed.NewTestGame()
	if err != nil {
		panic(err)
	}

	engine, err := engine.New(tb.Game, renderer.NewHeadlessDevice())
	if err != nil {
		panic(err)
	}

	if err := engine.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		_ = engine.Shutdown()
	}()

	// run engine
	if err := engine.Run(); err != nil {
		panic(err)
	}
}
