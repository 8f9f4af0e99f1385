// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/today-i-learned/category"
	"github.com/danielhkuo/today-i-learned/facts"
	"github.com/danielhkuo/today-i-learned/models"
)

func (a *app) newFactsCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "facts",
		Short: "List the most interesting facts",
		Long: `List up to 1000 facts, most interesting first.

Example:
  til facts
  til facts --category science -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withController(cmd, func(ctx context.Context, ctrl *facts.Controller) error {
				if err := load(ctx, ctrl, filter); err != nil {
					return err
				}
				return writeFacts(cmd.OutOrStdout(), a.v.GetString(keyOutput), filter, ctrl.State().Facts)
			})
		},
	}

	cmd.Flags().StringVarP(&filter, "category", "c", category.All, "category to list, or all")
	return cmd
}

func (a *app) newShareCmd() *cobra.Command {
	form := facts.NewForm()

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Share a new fact",
		Long: `Share a fact with a trustworthy source.

The text is limited to 200 characters and the source must be an http or
https URL.

Example:
  til share --text "Honey never spoils" --source https://example.org --category science`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := form.Validate(); err != nil {
				return err
			}
			return a.withController(cmd, func(ctx context.Context, ctrl *facts.Controller) error {
				row, err := ctrl.Submit(ctx, form)
				if err != nil {
					return alertError(ctrl, err)
				}
				return writeFact(cmd.OutOrStdout(), a.v.GetString(keyOutput), row)
			})
		},
	}

	cmd.Flags().StringVar(&form.Text, "text", "", "the fact")
	cmd.Flags().StringVar(&form.Source, "source", facts.DefaultSource, "source URL")
	cmd.Flags().StringVar(&form.Category, "category", "", "category of the fact")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func (a *app) newVoteCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "vote <id> <interesting|mindblowing|false>",
		Short: "Vote on a fact",
		Long: `Vote on one of the listed facts.

The fact must be among the facts "til facts" would list for the same
category.

Example:
  til vote 42 mindblowing
  til vote 7 false --category news`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid fact id %q", args[0])
			}
			counter, err := models.ParseCounter(args[1])
			if err != nil {
				return err
			}

			return a.withController(cmd, func(ctx context.Context, ctrl *facts.Controller) error {
				if err := load(ctx, ctrl, filter); err != nil {
					return err
				}
				row, err := ctrl.Vote(ctx, id, counter)
				if err != nil {
					return alertError(ctrl, err)
				}
				return writeFact(cmd.OutOrStdout(), a.v.GetString(keyOutput), row)
			})
		},
	}

	cmd.Flags().StringVarP(&filter, "category", "c", category.All, "category the fact is listed under")
	return cmd
}

func (a *app) newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCategories(cmd.OutOrStdout(), a.v.GetString(keyOutput), category.List())
		},
	}
}

// load fetches the list for filter, reporting a failed fetch as an error
func load(ctx context.Context, ctrl *facts.Controller, filter string) error {
	var err error
	if filter == category.All {
		err = ctrl.Load(ctx)
	} else {
		err = ctrl.SetCategory(ctx, filter)
	}
	if err != nil {
		return alertError(ctrl, err)
	}
	return nil
}
