package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/iota-uz/sitecms/modules/website/services"
	"github.com/iota-uz/sitecms/pkg/auth"
)

func newNormalizeCmd() *cobra.Command {
	var collections []string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Renumber collections to 0..n-1, closing gaps left by deletes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			svc := rt.app.Service(services.CollectionService{}).(*services.CollectionService)
			changed, err := svc.NormalizeAll(rt.ctx, auth.System(), collections...)
			for _, scope := range slices.Sorted(maps.Keys(changed)) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-60s %d renumbered\n", scope, changed[scope])
			}
			return err
		},
	}
	cmd.Flags().StringSliceVar(&collections, "collection", nil, "collections to normalize (default: all)")
	return cmd
}
