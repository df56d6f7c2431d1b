package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stitts-dev/strikelab/internal/analysis"
	"github.com/stitts-dev/strikelab/internal/coach"
)

func reportCmd() *cobra.Command {
	var (
		source string
		lang   string
		energy int
		tags   []string
	)

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Print the coaching report for a local export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := readSession(source, args[0])
			if err != nil {
				return err
			}

			var log *coach.SubjectiveLog
			if energy > 0 || len(tags) > 0 {
				log = &coach.SubjectiveLog{FeelTags: tags}
				if energy > 0 {
					log.EnergyLevel = &energy
				}
			}

			r := coach.BuildReport(analysis.Analyze(session.Shots), log, lang)
			out := cmd.OutOrStdout()
			for _, section := range []struct{ title, body string }{
				{"Diagnosis", r.Diagnosis},
				{"Interpretation", r.Interpretation},
				{"Prescription", r.Prescription},
				{"Validation", r.Validation},
				{"Next best move", r.NextBestMove},
			} {
				fmt.Fprintf(out, "## %s\n%s\n\n", section.title, section.body)
			}
			return nil
		},
	}

	addSourceFlag(cmd, &source)
	cmd.Flags().StringVarP(&lang, "lang", "l", coach.DefaultLanguage, "report language (en, no)")
	cmd.Flags().IntVar(&energy, "energy", 0, "energy level 1-5 from the session log")
	cmd.Flags().StringSliceVar(&tags, "feel", nil, "feel tags from the session log (stress, late, ...)")
	return cmd
}
