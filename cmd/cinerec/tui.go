package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cinerec/internal/domain"
	"cinerec/internal/tui"
)

var (
	tuiGenres    []string
	tuiLanguages []string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse recommendations interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		rec, cfg, err := buildRecommender(logger)
		if err != nil {
			return err
		}
		defer rec.Close()

		prefs := domain.UserPreferences{
			PreferredGenres:    tuiGenres,
			PreferredLanguages: tuiLanguages,
			GenreWeight:        cfg.Preferences.GenreWeight,
			LanguageWeight:     cfg.Preferences.LanguageWeight,
			MinRating:          cfg.Preferences.MinRating,
		}
		m := tui.New(rec, prefs, cfg.TopK)
		_, err = tea.NewProgram(m).Run()
		return err
	},
}

func init() {
	tuiCmd.Flags().StringSliceVarP(&tuiGenres, "genres", "g", nil, "preferred genres")
	tuiCmd.Flags().StringSliceVarP(&tuiLanguages, "languages", "l", nil, "preferred language codes")
	rootCmd.AddCommand(tuiCmd)
}
