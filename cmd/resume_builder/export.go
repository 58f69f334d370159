package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/identity"
	"github.com/jonathan/resume-builder/internal/store"
)

var (
	exportOutput  string
	exportAccount bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the stored resume as plain text",
	Long: `Render the active scope's resume document as a plain-text artifact.

The document is loaded from the store the serve command writes to, so the
session's scope (guest or account) is respected. An incomplete document is
refused with its completeness report.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write the artifact to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportAccount, "account", false, "Render the account-scope document regardless of session state")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()

	scope := store.ScopeGuest
	if exportAccount {
		scope = store.ScopeAccount
	} else {
		identCtl := identity.NewController(st)
		if err := identCtl.Restore(ctx); err != nil {
			return fmt.Errorf("failed to restore identity: %w", err)
		}
		scope = identCtl.Scope()
	}

	docCtl := document.NewController(st)
	if err := docCtl.Load(ctx, scope); err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	artifact, err := export.Render(docCtl.Document(), docCtl.Template())
	if err != nil {
		var notReady *export.ErrNotReady
		if errors.As(err, &notReady) {
			r := notReady.Report
			fmt.Fprintln(os.Stderr, "Resume is not ready to export:")
			fmt.Fprintf(os.Stderr, "  personal info: %v\n", r.PersonalInfo)
			fmt.Fprintf(os.Stderr, "  experience:    %v\n", r.Experience)
			fmt.Fprintf(os.Stderr, "  education:     %v\n", r.Education)
			fmt.Fprintf(os.Stderr, "  skills:        %v\n", r.Skills)
		}
		return err
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, []byte(artifact), 0o644); err != nil {
			return fmt.Errorf("failed to write artifact: %w", err)
		}
		return nil
	}

	fmt.Print(artifact)
	return nil
}
