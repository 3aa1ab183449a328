// Package cli implements the reviewctl commands driving the review-planner
// API.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/qualinet/review-planner/internal/client"
)

type GlobalOptions struct {
	ServerUrl string
	ActorID   string
	ActorRole string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ServerUrl: "http://localhost:3443",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ServerUrl, "server-url", "u", o.ServerUrl, "Address of the server")
	fs.StringVar(&o.ActorID, "actor", o.ActorID, "Acting user id forwarded to the server")
	fs.StringVar(&o.ActorRole, "role", o.ActorRole, "Acting user role (admin, ceo, technical_director, member_firm, reviewer)")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	return nil
}

func (o *GlobalOptions) Client() *client.Client {
	return client.New(o.ServerUrl, client.WithActor(o.ActorID, o.ActorRole))
}
