// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pocsclinic/internal/drafting"
	"pocsclinic/internal/models"
	"pocsclinic/internal/output"
	"pocsclinic/internal/store"
)

func (a *app) draftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Inspect and update the draft index",
	}

	var status string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List indexed drafts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listDrafts(status)
		},
	}
	list.Flags().StringVar(&status, "status", "", "only show drafts with this status (draft, review, published)")

	setStatus := &cobra.Command{
		Use:   "status <id> <draft|review>",
		Short: "Move a draft between draft and review",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setDraftStatus(args[0], args[1])
		},
	}

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a draft from the index and delete its file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.deleteDraft(args[0])
		},
	}

	cmd.AddCommand(list, setStatus, remove)
	return cmd
}

func (a *app) draftStore() *store.DraftStore {
	return store.NewDraftStore(a.cfg.DraftIndexPath())
}

func (a *app) listDrafts(status string) error {
	want := models.DraftStatus(strings.ToLower(status))
	if status != "" && !want.Valid() {
		return &output.CLIError{Summary: fmt.Sprintf("unknown status %q", status), ExitCode: output.ExitUsage}
	}

	drafts, err := a.draftStore().List()
	if err != nil {
		return err
	}

	table := output.NewTable(a.printer.Out(), []string{"ID", "STATUS", "DATE", "TITLE"})
	for _, d := range drafts {
		if status != "" && d.Status != want {
			continue
		}
		table.AddRow(d.ID, a.printer.StatusBadge(string(d.Status)), d.Date, d.Title)
	}
	if table.Len() == 0 {
		a.printer.Info("No drafts")
		return nil
	}
	return table.Render()
}

func (a *app) setDraftStatus(id, status string) error {
	next := models.DraftStatus(strings.ToLower(status))
	if next == models.DraftStatusPublished {
		return &output.CLIError{
			Summary:    "drafts cannot be marked published directly",
			Suggestion: "Run 'blogctl publish-draft " + id + "'",
			ExitCode:   output.ExitUsage,
		}
	}
	if !next.Valid() {
		return &output.CLIError{Summary: fmt.Sprintf("unknown status %q", status), ExitCode: output.ExitUsage}
	}

	err := a.draftStore().SetStatus(id, next)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return &output.CLIError{Summary: "draft not found: " + id, Suggestion: "Run 'blogctl drafts list'", ExitCode: output.ExitRefused}
	case errors.Is(err, store.ErrInvalidTransition):
		return &output.CLIError{Summary: "status change not allowed", Detail: err.Error(), ExitCode: output.ExitRefused}
	case err != nil:
		return err
	}
	a.printer.Success("%s is now %s", id, next)
	return nil
}

func (a *app) deleteDraft(id string) error {
	d, err := drafting.Discard(a.draftStore(), a.cfg.DraftsDir(), id)
	if errors.Is(err, store.ErrNotFound) {
		return &output.CLIError{Summary: "draft not found: " + id, Suggestion: "Run 'blogctl drafts list'", ExitCode: output.ExitRefused}
	}
	if err != nil {
		return err
	}
	if d.Status == models.DraftStatusPublished {
		a.printer.Success("Removed %s from the index (published file kept)", id)
	} else {
		a.printer.Success("Deleted draft %s", id)
	}
	return nil
}
