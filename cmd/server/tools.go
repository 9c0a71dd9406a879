package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gracepath/core/internal/config"
	"github.com/gracepath/core/internal/modules/processing/moderation"
	"github.com/gracepath/core/internal/modules/processing/scripture"
	"github.com/gracepath/core/internal/pkg/cache"
	"github.com/spf13/cobra"
)

func newScriptureCmd() *cobra.Command {
	var (
		language   string
		seasonName string
		count      int
	)
	cmd := &cobra.Command{
		Use:   "scripture <theme>",
		Short: "Resolve scripture references for a theme",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			season, ok := scripture.ParseSeason(seasonName)
			if !ok {
				season = scripture.SeasonFor(time.Now())
			}
			lang := scripture.NormalizeLanguage(language)
			refs := scripture.Resolve(strings.Join(args, " "), season, lang, count)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "season: %s\n", season.Label(lang))
			for _, ref := range refs {
				fmt.Fprintf(out, "%s  %s\n", ref.Citation, ref.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&language, "lang", scripture.LangEnglish, "Language (en or es)")
	cmd.Flags().StringVar(&seasonName, "season", "", "Liturgical season; empty means today")
	cmd.Flags().IntVar(&count, "count", 3, "Maximum number of references")
	return cmd
}

func newModerateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "moderate [text]",
		Short: "Check text against the moderation lists",
		Long:  "Check text against the moderation lists. Reads stdin when no text is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(raw)
			}
			if strings.TrimSpace(text) == "" {
				return errors.New("no text to moderate")
			}

			var topics, phrases []string
			if cfg, err := config.Load(*configPath); err == nil {
				topics, phrases = cfg.Moderation.ForbiddenTopics, cfg.Moderation.WarningPhrases
			}
			verdict := moderation.New(topics, phrases).Moderate(text)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(verdict)
		},
	}
}

func newCacheCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the SQLite response cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "Drop expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Cache.Backend != config.BackendSQLite {
				return fmt.Errorf("cache backend is %q, sweep only applies to sqlite", cfg.Cache.Backend)
			}
			store, err := cache.OpenSQLite(cfg.DataPath(cfg.Cache.SQLitePath))
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			n, err := store.Sweep(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired entries\n", n)
			return nil
		},
	})
	return cmd
}
