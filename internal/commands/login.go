package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todocli/internal/exitcode"
	"todocli/internal/routeguard"
)

func init() {
	Register(&LoginCmd{})
	Register(&RegisterCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string              { return "login" }
func (c *LoginCmd) Aliases() []string         { return nil }
func (c *LoginCmd) Synopsis() string          { return "Sign in and store the session token" }
func (c *LoginCmd) Usage() string             { return "todocli login <email> <password>" }
func (c *LoginCmd) Screen() routeguard.Screen { return routeguard.ScreenLogin }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runAuth(ctx, env, args, out, errOut, "login",
		func(ctx context.Context, email, password string) (string, error) {
			return env.Svc.Login(ctx, email, password)
		})
}

// RegisterCmd implements the register command.
type RegisterCmd struct{}

func (c *RegisterCmd) Name() string              { return "register" }
func (c *RegisterCmd) Aliases() []string         { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string          { return "Create an account and sign in" }
func (c *RegisterCmd) Usage() string             { return "todocli register <email> <password>" }
func (c *RegisterCmd) Screen() routeguard.Screen { return routeguard.ScreenRegister }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RegisterCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runAuth(ctx, env, args, out, errOut, "register",
		func(ctx context.Context, email, password string) (string, error) {
			return env.Svc.Register(ctx, email, password)
		})
}

// runAuth is the shared implementation for login and register: exchange
// credentials for a token, then persist it through the session manager.
// The session only transitions once the token is durably stored.
func runAuth(ctx context.Context, env *Env, args []string, out, errOut io.Writer, verb string,
	exchange func(ctx context.Context, email, password string) (string, error)) int {

	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	}
	email, password := strings.TrimSpace(args[0]), args[1]
	if email == "" || password == "" {
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	}

	token, err := exchange(ctx, email, password)
	if err != nil {
		return fail(errOut, err)
	}

	if err := env.Session.Login(token); err != nil {
		fmt.Fprintf(errOut, "error: failed to store session: %v\n", err)
		return exitcode.AuthError
	}

	env.Log.Debug().Str("email", email).Msgf("%s succeeded", verb)
	if !env.Cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
