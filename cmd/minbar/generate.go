package main

import (
	"errors"
	"time"

	"github.com/minbar-sermons-api/internal/models"
	"github.com/minbar-sermons-api/internal/services"
	"github.com/spf13/cobra"
)

var (
	genSurah int
	genTopic string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new sermon for a surah",
	Long: `Generate a new sermon with the configured language model.

The sermon is validated and added to the in-memory catalog of this process
and printed. Use "minbar serve" to keep generated sermons available.

Examples:
  minbar generate --surah 18
  minbar generate --surah 18 --topic "صفحة 293 - الجزء الأول"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.Close()

		sermon, err := a.Sermons.Generate(cmd.Context(), models.GenerateRequest{
			SurahNumber: genSurah,
			Topic:       genTopic,
		})
		if err != nil {
			return errors.New(services.UserMessage(err))
		}
		return printOutput(cmd.OutOrStdout(), sermon)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the verses of a surah section",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, _, err := openApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		state := a.Sermons.RequestPreview(genSurah, genTopic)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for state.Loading {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				state = a.Sermons.Preview()
			}
		}
		if state.Error != "" {
			return errors.New(state.Error)
		}
		return printOutput(cmd.OutOrStdout(), state)
	},
}

func init() {
	for _, c := range []*cobra.Command{generateCmd, previewCmd} {
		c.Flags().IntVar(&genSurah, "surah", 0, "Surah number")
		c.Flags().StringVar(&genTopic, "topic", "", "Section, e.g. \"صفحة 293 - الجزء الأول\"")
		_ = c.MarkFlagRequired("surah")
	}
	_ = previewCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(generateCmd, previewCmd)
}
