package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pactwatch/pactwatch/pkg/config"
	"github.com/pactwatch/pactwatch/pkg/contracts"
	"github.com/pactwatch/pactwatch/pkg/expiry"
	"github.com/pactwatch/pactwatch/pkg/extract"
	"github.com/pactwatch/pactwatch/pkg/session"
)

func runList(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	st, closer, err := openStore(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer closer()

	records := st.List()
	if len(records) == 0 {
		_, _ = fmt.Fprintln(stdout, "No contracts yet.")
		return 0
	}
	for _, r := range records {
		expiresOn := r.ExpiryDate
		if expiresOn == "" {
			expiresOn = "N/A"
		}
		_, _ = fmt.Fprintf(stdout, "%s  %s  %s  expires: %s\n", r.ID, r.Title, r.Counterparty, expiresOn)
	}
	return 0
}

func runShow(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		_, _ = fmt.Fprintln(stderr, "Usage: pactwatch show <id>")
		return 2
	}

	ctx := context.Background()
	st, closer, err := openStore(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer closer()

	record, err := st.Get(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	printRecord(stdout, record)
	return 0
}

func printRecord(w io.Writer, r contracts.Record) {
	_, _ = fmt.Fprintf(w, "ID:                     %s\n", r.ID)
	_, _ = fmt.Fprintf(w, "Title:                  %s\n", r.Title)
	_, _ = fmt.Fprintf(w, "Counterparty:           %s\n", r.Counterparty)
	_, _ = fmt.Fprintf(w, "Effective date:         %s\n", r.EffectiveDate)
	_, _ = fmt.Fprintf(w, "Expiry date:            %s\n", r.ExpiryDate)
	_, _ = fmt.Fprintf(w, "Confidentiality period: %s\n", r.ConfidentialityPeriod)
	_, _ = fmt.Fprintf(w, "Limitations:            %s\n", r.Limitations)
	_, _ = fmt.Fprintf(w, "Obligations:            %s\n", r.Obligations)
	_, _ = fmt.Fprintf(w, "Notes:                  %s\n", r.Notes)
	_, _ = fmt.Fprintf(w, "Added:                  %s\n", r.DateAdded.Format(time.RFC3339))
}

func draftFlags(fs *flag.FlagSet, d *contracts.Draft) {
	fs.StringVar(&d.Title, "title", d.Title, "contract title (required)")
	fs.StringVar(&d.Counterparty, "counterparty", d.Counterparty, "counterparty name")
	fs.StringVar(&d.EffectiveDate, "effective", d.EffectiveDate, "effective date (YYYY-MM-DD)")
	fs.StringVar(&d.ExpiryDate, "expiry", d.ExpiryDate, "expiry date (YYYY-MM-DD)")
	fs.StringVar(&d.ConfidentialityPeriod, "period", d.ConfidentialityPeriod, "confidentiality period")
	fs.StringVar(&d.Limitations, "limitations", d.Limitations, "key limitations")
	fs.StringVar(&d.Obligations, "obligations", d.Obligations, "key obligations")
	fs.StringVar(&d.Notes, "notes", d.Notes, "additional notes")
}

func runAdd(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var draft contracts.Draft
	draftFlags(fs, &draft)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	st, closer, err := openStore(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer closer()

	sess := session.New(st, nil)
	sess.SetDraft(draft)
	record, committed, err := sess.Commit(ctx)
	if !committed {
		_, _ = fmt.Fprintln(stderr, "error: title must not be empty")
		return 2
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "warning: saved in memory but not persisted: %v\n", err)
	}
	_, _ = fmt.Fprintf(stdout, "Added %s (%s)\n", record.Title, record.ID)
	return 0
}

func runEdit(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		_, _ = fmt.Fprintln(stderr, "Usage: pactwatch edit <id> [flags]")
		return 2
	}
	id := args[0]

	ctx := context.Background()
	st, closer, err := openStore(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer closer()

	sess := session.New(st, nil)
	if err := sess.Select(id); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	// Flags default to the record's current values, so unset flags keep them.
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	draft := sess.Draft()
	draftFlags(fs, &draft)
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	sess.SetDraft(draft)

	record, committed, err := sess.Commit(ctx)
	if !committed {
		_, _ = fmt.Fprintln(stderr, "error: title must not be empty")
		return 2
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "warning: saved in memory but not persisted: %v\n", err)
	}
	_, _ = fmt.Fprintf(stdout, "Updated %s (%s)\n", record.Title, record.ID)
	return 0
}

func runDelete(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		_, _ = fmt.Fprintln(stderr, "Usage: pactwatch delete <id>")
		return 2
	}

	ctx := context.Background()
	st, closer, err := openStore(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer closer()

	if err := st.Delete(ctx, args[0]); err != nil {
		_, _ = fmt.Fprintf(stderr, "warning: deleted in memory but not persisted: %v\n", err)
	}
	_, _ = fmt.Fprintf(stdout, "Deleted %s\n", args[0])
	return 0
}

func runAlerts(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("alerts", flag.ContinueOnError)
	fs.SetOutput(stderr)
	horizon := fs.Int("horizon", cfg.HorizonDays, "lookahead window in days")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	st, closer, err := openStore(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer closer()

	now := time.Now()
	records := st.List()
	upcoming := expiry.Upcoming(records, now, *horizon)
	stats := expiry.Compute(records, now, *horizon)

	if len(upcoming) == 0 {
		_, _ = fmt.Fprintln(stdout, "No upcoming expirations")
	} else {
		for _, r := range upcoming {
			days, _ := expiry.DaysRemaining(r, now)
			_, _ = fmt.Fprintf(stdout, "%s  %s  expires %s (%d days)\n", r.ID, r.Title, r.ExpiryDate, days)
		}
	}
	_, _ = fmt.Fprintf(stdout, "Total contracts: %d\nExpiring in %d days: %d\n", stats.Total, *horizon, stats.Expiring)
	return 0
}

func runImport(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	save := fs.Bool("save", false, "commit the extracted draft instead of just printing it")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		_, _ = fmt.Fprintln(stderr, "Usage: pactwatch import [--save] <file>")
		return 2
	}
	path := fs.Arg(0)

	content, err := os.ReadFile(path)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	ctx := context.Background()
	st, closer, err := openStore(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer closer()

	pipeline := extract.NewPipeline(&extract.Heuristic{OrgSuffix: cfg.OrgSuffix})
	sess := session.New(st, pipeline)
	sess.DropFile(ctx, extract.File{Name: filepath.Base(path), Bytes: content})
	sess.Apply(<-pipeline.Results())

	draft := sess.Draft()
	if sess.Extracting() || draft.IsZero() {
		_, _ = fmt.Fprintln(stderr, "error: extraction produced no draft")
		return 1
	}

	_, _ = fmt.Fprintf(stdout, "Extracted draft from %s:\n", filepath.Base(path))
	_, _ = fmt.Fprintf(stdout, "  Title:                  %s\n", draft.Title)
	_, _ = fmt.Fprintf(stdout, "  Counterparty:           %s\n", draft.Counterparty)
	_, _ = fmt.Fprintf(stdout, "  Effective date:         %s\n", draft.EffectiveDate)
	_, _ = fmt.Fprintf(stdout, "  Expiry date:            %s\n", draft.ExpiryDate)
	_, _ = fmt.Fprintf(stdout, "  Confidentiality period: %s\n", draft.ConfidentialityPeriod)
	_, _ = fmt.Fprintf(stdout, "  Limitations:            %s\n", draft.Limitations)
	_, _ = fmt.Fprintf(stdout, "  Obligations:            %s\n", draft.Obligations)

	if !*save {
		_, _ = fmt.Fprintln(stdout, "Not saved. Re-run with --save to commit, or use 'add' to adjust fields first.")
		return 0
	}
	record, committed, err := sess.Commit(ctx)
	if !committed {
		_, _ = fmt.Fprintln(stderr, "error: extracted draft has no title; use 'add' with --title instead")
		return 1
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "warning: saved in memory but not persisted: %v\n", err)
	}
	_, _ = fmt.Fprintf(stdout, "Added %s (%s)\n", record.Title, record.ID)
	return 0
}
