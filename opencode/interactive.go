package opencode

import (
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// runInteractive runs the agent on a pseudo-terminal wired to the
// controlling terminal. The terminal is put in raw mode for the duration
// and window resizes are forwarded to the agent.
func runInteractive(cmd *exec.Cmd) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer ptmx.Close()

	resize := make(chan os.Signal, 1)
	signal.Notify(resize, syscall.SIGWINCH)
	defer signal.Stop(resize)
	go func() {
		for range resize {
			_ = pty.InheritSize(os.Stdin, ptmx)
		}
	}()
	resize <- syscall.SIGWINCH

	if term.IsTerminal(int(os.Stdin.Fd())) {
		oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err == nil {
			defer term.Restore(int(os.Stdin.Fd()), oldState)
		}
	}

	go func() {
		_, _ = io.Copy(ptmx, os.Stdin)
	}()
	// Reading the pty returns EIO once the agent exits; that is the
	// normal shutdown path, not an error worth reporting.
	_, _ = io.Copy(os.Stdout, ptmx)

	return waitExit(cmd)
}
