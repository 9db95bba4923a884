package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinerec/internal/config"
	"cinerec/internal/domain"
)

var (
	recommendTitle     string
	recommendTopK      int
	recommendGenres    []string
	recommendLanguages []string
	recommendGenreW    float64
	recommendLangW     float64
	recommendMinRating float64
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print ranked recommendations for a seed title",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		rec, cfg, err := buildRecommender(logger)
		if err != nil {
			return err
		}
		defer rec.Close()

		prefs := preferencesFromFlags(cmd, cfg)
		topK := recommendTopK
		if topK == 0 {
			topK = cfg.TopK
		}
		seed, err := rec.Resolve(recommendTitle)
		if err != nil {
			return err
		}
		results, err := rec.RecommendByID(seed.ID, prefs, topK)
		if err != nil {
			return err
		}

		fmt.Printf("Recommendations for %q:\n\n", seed.Title)
		for i, r := range results {
			fmt.Printf("%2d. %s\n", i+1, r.Title)
			fmt.Printf("    score %.3f  rating %.1f/10  [%s]\n", r.Score, r.Rating, strings.Join(r.Genres, ", "))
		}
		return nil
	},
}

// preferencesFromFlags merges config defaults with any explicitly set flags.
func preferencesFromFlags(cmd *cobra.Command, cfg *config.AppConfig) domain.UserPreferences {
	prefs := domain.UserPreferences{
		PreferredGenres:    recommendGenres,
		PreferredLanguages: recommendLanguages,
		GenreWeight:        cfg.Preferences.GenreWeight,
		LanguageWeight:     cfg.Preferences.LanguageWeight,
		MinRating:          cfg.Preferences.MinRating,
	}
	if cmd.Flags().Changed("genre-weight") {
		prefs.GenreWeight = recommendGenreW
	}
	if cmd.Flags().Changed("language-weight") {
		prefs.LanguageWeight = recommendLangW
	}
	if cmd.Flags().Changed("min-rating") {
		prefs.MinRating = recommendMinRating
	}
	return prefs
}

func init() {
	recommendCmd.Flags().StringVarP(&recommendTitle, "title", "t", "", "seed movie title (required)")
	recommendCmd.Flags().IntVarP(&recommendTopK, "top-k", "k", 0, "number of recommendations (default from config)")
	recommendCmd.Flags().StringSliceVarP(&recommendGenres, "genres", "g", nil, "preferred genres")
	recommendCmd.Flags().StringSliceVarP(&recommendLanguages, "languages", "l", nil, "preferred language codes")
	recommendCmd.Flags().Float64Var(&recommendGenreW, "genre-weight", 0.3, "genre boost weight")
	recommendCmd.Flags().Float64Var(&recommendLangW, "language-weight", 0.2, "language boost weight")
	recommendCmd.Flags().Float64Var(&recommendMinRating, "min-rating", 0, "soft minimum rating")
	_ = recommendCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(recommendCmd)
}
