package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/services"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry-run the similarity check for a project idea",
	Long: `Check compares a title and description against the accepted projects,
college ideas and team proposals of one academic year and prints the ranked
matches with the verdict. Nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		year, _ := cmd.Flags().GetInt("year")
		top, _ := cmd.Flags().GetInt("top")

		if title == "" || description == "" {
			return fmt.Errorf("--title and --description are required")
		}

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.closer()

		years := services.NewYearResolver(time.Now)
		if year == 0 {
			year = years.Current()
		}

		vectorizer := services.NewVectorizer(rt.cfg.Similarity.MaxFeatures, rt.cfg.Similarity.ExtraStopWords)
		admission := services.NewAdmissionService(
			services.NewAggregator(rt.repo.Corpus),
			services.NewSimilarityScorer(vectorizer, rt.log),
			rt.repo.Proposal,
			years,
			nil,
			services.AdmissionOptions{Threshold: rt.cfg.Similarity.Threshold},
			rt.log,
		)

		decision, matches, err := admission.Check(cmd.Context(), year, models.ProjectIdeaRequest{
			Title:       title,
			Description: description,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "year %d, %d candidates compared\n\n", year, len(matches))
		for i, m := range matches {
			if top > 0 && i >= top {
				break
			}
			fmt.Fprintf(out, "%5.2f  %-13s %s\n", m.Score, m.Source, m.Title)
		}

		verdict := "ADMIT"
		if !decision.Admit() {
			verdict = "REJECT"
		}
		fmt.Fprintf(out, "\nmax similarity %.2f, threshold %.2f: %s\n", decision.MaxSimilarity, rt.cfg.Similarity.Threshold, verdict)
		return nil
	},
}

func init() {
	checkCmd.Flags().String("title", "", "project idea title")
	checkCmd.Flags().String("description", "", "project idea description")
	checkCmd.Flags().Int("year", 0, "academic year to compare against (default: current)")
	checkCmd.Flags().Int("top", 10, "number of matches to print, 0 for all")

	rootCmd.AddCommand(checkCmd)
}
