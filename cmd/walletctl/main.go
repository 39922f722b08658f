package main

import (
	"fmt"
	"os"
	"syscall"

	"glin-wallet/internal/messaging"

	"github.com/urfave/cli"
	"golang.org/x/term"
)

const (
	defaultDaemon    = "http://127.0.0.1:7788"
	defaultTokenFile = "walletd.token"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[walletctl] %v\n", err)
	os.Exit(1)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "walletctl"
	app.Usage = "control plane for walletd (GLIN wallet daemon)"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "daemon",
			Value: defaultDaemon,
			Usage: "base URL of the walletd HTTP server",
		},
		cli.StringFlag{
			Name:  "token",
			Usage: "extension token; read from --tokenfile when empty",
		},
		cli.StringFlag{
			Name:  "tokenfile",
			Value: defaultTokenFile,
			Usage: "path to the token file written by walletd",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Value: messaging.DefaultTimeout,
			Usage: "how long to wait for a response",
		},
	}
	app.Commands = []cli.Command{
		sendCommand,
		stateCommand,
		unlockCommand,
		lockCommand,
		approveCommand,
		rejectCommand,
		genTokenCommand,
		hashPasswordCommand,
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

// readPassword reads a password from the terminal without echoing it.
func readPassword(text string) (string, error) {
	fmt.Fprint(os.Stderr, text)

	pw, err := term.ReadPassword(int(syscall.Stdin)) // nolint:unconvert
	fmt.Fprintln(os.Stderr)
	return string(pw), err
}

// promptSecret is swapped out in tests.
var promptSecret = readPassword
