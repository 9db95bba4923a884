package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List genres present in the corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, _, err := buildRecommender(newLogger())
		if err != nil {
			return err
		}
		defer rec.Close()
		for _, g := range rec.Genres() {
			fmt.Println(g)
		}
		return nil
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List language codes present in the corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, _, err := buildRecommender(newLogger())
		if err != nil {
			return err
		}
		defer rec.Close()
		for _, l := range rec.Languages() {
			fmt.Println(l)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genresCmd, languagesCmd)
}
