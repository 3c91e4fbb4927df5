package cli

import (
	"fmt"

	"github.com/dimitrije/eduadmin/internal/handlers"
	"github.com/dimitrije/eduadmin/internal/routes"
	"github.com/dimitrije/eduadmin/pkg/dto"
	"github.com/spf13/cobra"
)

func NewRoutesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes [path]",
		Short: "List console routes or resolve one path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := routes.Default()

			if len(args) == 0 {
				all := table.All()
				out := make([]dto.RouteResponse, 0, len(all))
				for _, route := range all {
					out = append(out, handlers.NewRouteResponse(route))
				}
				return printJSON(cmd.OutOrStdout(), out)
			}

			route, ok := table.Resolve(args[0])
			if !ok {
				return fmt.Errorf("no route for %s", args[0])
			}
			return printJSON(cmd.OutOrStdout(), handlers.NewRouteResponse(route))
		},
	}

	return cmd
}
