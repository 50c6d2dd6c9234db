// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pocsclinic/internal/cache"
	"pocsclinic/internal/output"
	"pocsclinic/internal/publish"
	"pocsclinic/internal/storage"
	"pocsclinic/internal/store"
)

func (a *app) publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish-draft [file]",
		Short: "Publish a draft, or list drafts when no file is given",
		Long: `Publish a draft from the drafts directory. ".md" is appended to the file
name when missing.

Publishing copies the draft into the published directory, appends a
registry record (title, excerpt and category are read from the Markdown)
and marks the draft as published. When object storage is configured the
file is mirrored there, and when Valkey is configured the rendered page
cache is cleared.

The command refuses, without changing anything, when the draft is
missing, the published file already exists or the id is already
registered. Refusals exit with status 3.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.listDraftFiles()
			}
			return a.publish(cmd.Context(), args[0])
		},
	}
}

func (a *app) basePublisher() *publish.Publisher {
	return &publish.Publisher{
		DraftsDir:    a.cfg.DraftsDir(),
		PublishedDir: a.cfg.PublishedDir(),
		Registry:     store.NewPostStore(a.cfg.RegistryPath()),
		Drafts:       store.NewDraftStore(a.cfg.DraftIndexPath()),
	}
}

func (a *app) listDraftFiles() error {
	files, err := a.basePublisher().ListDrafts()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		a.printer.Info("No drafts in %s", a.cfg.DraftsDir())
		return nil
	}

	a.printer.Header("Drafts")
	table := output.NewTable(a.printer.Out(), []string{"FILE", "STATUS", "DATE", "TITLE"})
	for _, f := range files {
		status, date, title := "-", "", ""
		if f.Entry != nil {
			status, date, title = string(f.Entry.Status), f.Entry.Date, f.Entry.Title
		}
		table.AddRow(a.printer.Bold(f.Name), a.printer.StatusBadge(status), date, title)
	}
	if err := table.Render(); err != nil {
		return err
	}
	a.printer.Info("Publish one with: blogctl publish-draft <file>")
	return nil
}

// publisher adds the optional object storage mirror and page cache to the
// base publisher. Either one failing to initialise is reported and
// skipped. The returned func releases the cache connection.
func (a *app) publisher(ctx context.Context) (*publish.Publisher, func()) {
	pub := a.basePublisher()
	cleanup := func() {}

	if a.cfg.S3Enabled() {
		mirror, err := storage.New(a.cfg.S3Endpoint, a.cfg.S3Region, a.cfg.S3AccessKey, a.cfg.S3SecretKey,
			a.cfg.S3Bucket, a.cfg.S3Prefix, a.cfg.S3PublicURL)
		switch {
		case err != nil:
			a.printer.Warning("Object storage disabled: %v", err)
		case mirror == nil:
			a.printer.Warning("Object storage disabled: S3_ACCESS_KEY and S3_SECRET_KEY are not set")
		default:
			pub.Mirror = mirror
		}
	}

	if addr := a.cfg.ValkeyAddr(); addr != "" {
		client, err := cache.ConnectValkey(ctx, addr, a.cfg.ValkeyPassword, a.cfg.ValkeyDB)
		if err != nil {
			a.printer.Warning("Page cache not cleared: %v", err)
		} else {
			pub.Cache = cache.NewPageCache(client, a.cfg.PageCacheTTL)
			cleanup = func() { client.Close() }
		}
	}
	return pub, cleanup
}

func (a *app) publish(ctx context.Context, name string) error {
	pub, cleanup := a.publisher(ctx)
	defer cleanup()

	out, err := pub.Publish(ctx, name)
	if err != nil {
		return publishError(err)
	}

	a.printer.Success("Published %s", out.PublishedPath)
	a.printer.Info("Registry record: %s | %s | %s | %s", out.Record.ID, out.Record.Title, out.Record.Category, out.Record.Date)
	if out.Mirrored {
		a.printer.Info("Mirrored to %s", out.MirrorURL)
	}
	for _, w := range out.Warnings {
		a.printer.Warning("%s", w)
	}
	return nil
}

func publishError(err error) error {
	var partial *publish.PartialError
	switch {
	case errors.Is(err, publish.ErrInvalidName):
		return &output.CLIError{Summary: "invalid draft name", Detail: err.Error(), ExitCode: output.ExitUsage}
	case errors.Is(err, publish.ErrDraftMissing):
		return &output.CLIError{
			Summary:    "draft not found",
			Detail:     err.Error(),
			Suggestion: "Run 'blogctl publish-draft' to list drafts",
			ExitCode:   output.ExitRefused,
		}
	case errors.Is(err, publish.ErrAlreadyPublished):
		return &output.CLIError{Summary: "a published file with this name already exists", Detail: err.Error(), ExitCode: output.ExitRefused}
	case errors.As(err, &partial):
		return &output.CLIError{
			Summary:    fmt.Sprintf("publish incomplete: %s failed", partial.Step),
			Detail:     err.Error(),
			Suggestion: fmt.Sprintf("The published copy %s was kept; fix the cause, then complete the remaining steps by hand", partial.Copied),
			ExitCode:   output.ExitFailure,
		}
	case errors.Is(err, publish.ErrDuplicateID):
		return &output.CLIError{Summary: "this post id is already registered", Detail: err.Error(), ExitCode: output.ExitRefused}
	}
	return err
}
