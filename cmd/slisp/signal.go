package main

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// watchInterrupt installs a SIGINT handler for the non-interactive paths
// (liner's SetCtrlCAborts already covers the REPL): on receipt, the
// interpreter is torn down and the process exits with the conventional
// 128+SIGINT status, the same convention noted in job_unix.go's monitor
// loop for a cancelled foreground task.
func watchInterrupt(in interpreterCloser) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, unix.SIGINT)

	go func() {
		<-sig
		in.Close()
		os.Exit(128 + int(unix.SIGINT))
	}()
}

type interpreterCloser interface {
	Close()
}
