// Package cli provides the interactive bizdesk command-line client.
//
// It wires configuration, the session store, the backend transport and the
// services into one App, restores a previous session and then runs a REPL.
//
// Commands:
//   - register, login, logout, whoami, profile, delete-account
//   - list <kind>, add <kind>, edit <kind> <id>, rm <kind> <id>
//   - chart [start] [end], convert <base> <target> <amount>
//   - stats, help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
