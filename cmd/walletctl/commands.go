package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"glin-wallet/internal/messaging"
	"glin-wallet/internal/service"

	"github.com/rs/zerolog"
	"github.com/urfave/cli"
)

// secretFields are payload keys whose "-" value is replaced by a prompt.
var secretFields = map[string]string{
	"password":        "Password: ",
	"currentPassword": "Current password: ",
	"newPassword":     "New password: ",
	"mnemonic":        "Seed phrase: ",
}

var sendCommand = cli.Command{
	Name:      "send",
	Usage:     "send one message to walletd and print its response",
	ArgsUsage: "TYPE [payload-json]",
	Description: `
	Sends a raw message envelope, for example:

	    walletctl send UNLOCK_WALLET '{"walletId":"...","password":"-"}'

	Any of password, currentPassword, newPassword or mnemonic set to "-"
	is read from the terminal instead.`,
	Action: send,
}

func send(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.ShowCommandHelp(ctx, "send")
	}
	msgType := strings.ToUpper(ctx.Args().First())

	var payload map[string]interface{}
	if raw := ctx.Args().Get(1); raw != "" {
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return fmt.Errorf("payload is not a JSON object: %w", err)
		}
	}
	if err := fillSecrets(payload); err != nil {
		return err
	}
	return call(ctx, msgType, payload)
}

var stateCommand = cli.Command{
	Name:   "state",
	Usage:  "print the wallet state (GET_STATE)",
	Action: func(ctx *cli.Context) error { return call(ctx, "GET_STATE", nil) },
}

var unlockCommand = cli.Command{
	Name:      "unlock",
	Usage:     "unlock a wallet",
	ArgsUsage: "wallet-id",
	Description: `
	Unlocks the given wallet. The password is read from the terminal.`,
	Action: unlock,
}

func unlock(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "unlock")
	}
	password, err := promptSecret("Password: ")
	if err != nil {
		return err
	}
	return call(ctx, "UNLOCK_WALLET", map[string]interface{}{
		"walletId": ctx.Args().First(),
		"password": password,
	})
}

var lockCommand = cli.Command{
	Name:   "lock",
	Usage:  "lock the wallet and drop the session keys",
	Action: func(ctx *cli.Context) error { return call(ctx, "LOCK_WALLET", nil) },
}

var approveCommand = cli.Command{
	Name:      "approve",
	Usage:     "approve a pending dapp connection request",
	ArgsUsage: "request-id",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return cli.ShowCommandHelp(ctx, "approve")
		}
		return call(ctx, "APPROVE_CONNECTION", map[string]interface{}{
			"requestId": ctx.Args().First(),
		})
	},
}

var rejectCommand = cli.Command{
	Name:      "reject",
	Usage:     "reject a pending dapp connection request",
	ArgsUsage: "request-id",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "reason",
			Usage: "reason reported to the page",
		},
	},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return cli.ShowCommandHelp(ctx, "reject")
		}
		payload := map[string]interface{}{"requestId": ctx.Args().First()}
		if reason := ctx.String("reason"); reason != "" {
			payload["reason"] = reason
		}
		return call(ctx, "REJECT_CONNECTION", payload)
	},
}

var genTokenCommand = cli.Command{
	Name:  "gen-token",
	Usage: "print a random extension token for security.extension_token",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "length",
			Value: 48,
			Usage: "number of characters",
		},
	},
	Action: func(ctx *cli.Context) error {
		token, err := service.GeneratePassword(ctx.Int("length"))
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, token)
		return nil
	},
}

var hashPasswordCommand = cli.Command{
	Name:  "hash-password",
	Usage: "print the argon2id hash of a password read from the terminal",
	Description: `
	Useful for checking how long a KDF setting takes on this machine
	before putting it into the security section of the config.`,
	Flags: []cli.Flag{
		cli.UintFlag{Name: "time", Value: 3, Usage: "argon2 passes"},
		cli.UintFlag{Name: "memory", Value: 64 * 1024, Usage: "argon2 memory in KiB"},
		cli.UintFlag{Name: "threads", Value: 2, Usage: "argon2 lanes"},
	},
	Action: hashPassword,
}

func hashPassword(ctx *cli.Context) error {
	password, err := promptSecret("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("empty password")
	}
	hasher := service.NewArgon2HashService(service.KDFParams{
		Time:      uint32(ctx.Uint("time")),
		MemoryKiB: uint32(ctx.Uint("memory")),
		Threads:   uint8(ctx.Uint("threads")),
	})
	encoded, err := hasher.Hash(password)
	if err != nil {
		return err
	}
	ok, err := hasher.Verify(password, encoded)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("hash does not verify")
	}
	fmt.Fprintln(ctx.App.Writer, encoded)
	return nil
}

// fillSecrets prompts for every secret field whose value is "-".
func fillSecrets(payload map[string]interface{}) error {
	for key, prompt := range secretFields {
		if v, ok := payload[key].(string); ok && v == "-" {
			secret, err := promptSecret(prompt)
			if err != nil {
				return fmt.Errorf("reading %s: %w", key, err)
			}
			payload[key] = secret
		}
	}
	return nil
}

// call sends one message as the extension surface and prints the data of
// its response.
func call(ctx *cli.Context, msgType string, payload interface{}) error {
	bridge, err := newBridge(ctx)
	if err != nil {
		return err
	}
	resp, err := bridge.Call(context.Background(), msgType, payload)
	if err != nil {
		return err
	}
	return printJSON(ctx, resp.Data)
}

func newBridge(ctx *cli.Context) (*messaging.Bridge, error) {
	token, err := resolveToken(ctx.GlobalString("token"), ctx.GlobalString("tokenfile"))
	if err != nil {
		return nil, err
	}
	transport := messaging.NewHTTPTransport(messaging.HTTPTransportConfig{
		BaseURL: ctx.GlobalString("daemon"),
		Token:   token,
		Signer:  service.NewHMACSignatureService(),
	})
	return messaging.NewBridge(transport, ctx.GlobalDuration("timeout"), zerolog.Nop()), nil
}

func resolveToken(token, path string) (string, error) {
	if token != "" {
		return token, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("no --token given and token file unreadable: %w", err)
	}
	token = strings.TrimSpace(string(raw))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", path)
	}
	return token, nil
}

func printJSON(ctx *cli.Context, data json.RawMessage) error {
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "    "); err != nil {
		return fmt.Errorf("response is not JSON: %w", err)
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(ctx.App.Writer)
	return err
}
