package cli

import (
	"fmt"

	"github.com/dimitrije/eduadmin/pkg/dto"
	"github.com/spf13/cobra"
)

func NewCollectionCommand(c *console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collection",
		Short: "Manage collections",
	}

	cmd.AddCommand(newCollectionContentCommand(c))
	cmd.AddCommand(newCollectionAddCommand(c))
	cmd.AddCommand(newCollectionDeleteCommand(c))
	cmd.AddCommand(newCollectionEditCommand(c))
	cmd.AddCommand(newCollectionComputePopularityCommand(c))

	return cmd
}

func newCollectionContentCommand(c *console) *cobra.Command {
	var rank string

	cmd := &cobra.Command{
		Use:   "content <collectionId>",
		Short: "List the folders and PDFs in a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule := dto.CollectionRankRule(rank)
			if !rule.Valid() {
				return fmt.Errorf("unknown rank rule %q, expected one of %v", rank, dto.RankRules)
			}

			contents, err := c.collectionAPI().GetCollectionContent(cmd.Context(), args[0], rule)
			if err != nil {
				return err
			}
			if contents == nil {
				contents = []dto.CollectionContentVo{}
			}
			return printJSON(cmd.OutOrStdout(), contents)
		},
	}

	cmd.Flags().StringVar(&rank, "rank", string(dto.RankByCreateTimeDesc), "Rank rule")

	return cmd
}

func newCollectionAddCommand(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <parentCollectionId>",
		Short: "Create a folder under a parent collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := c.collectionAPI().InsertCollection(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), folder)
		},
	}
}

func newCollectionDeleteCommand(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collectionId>",
		Short: "Delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.collectionAPI().DeleteCollection(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printOK(cmd.OutOrStdout())
		},
	}
}

func newCollectionEditCommand(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <collectionId> <name>",
		Short: "Rename a collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.collectionAPI().EditCollection(cmd.Context(), args[1], args[0]); err != nil {
				return err
			}
			return printOK(cmd.OutOrStdout())
		},
	}
}

func newCollectionComputePopularityCommand(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "compute-popularity",
		Short: "Recompute popularity scores for all collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.collectionAPI().ComputePopularity(cmd.Context()); err != nil {
				return err
			}
			return printOK(cmd.OutOrStdout())
		},
	}
}
