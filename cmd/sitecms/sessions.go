package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iota-uz/sitecms/modules/core/services"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage admin sessions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete expired sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			svc := rt.app.Service(services.SessionService{}).(*services.SessionService)
			n, err := svc.PurgeExpired(rt.ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d expired sessions removed\n", n)
			return nil
		},
	})
	return cmd
}
