package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/voicevitals/voicevitals/pkg/emotion"
)

var emotionsCmd = &cobra.Command{
	Use:   "emotions",
	Short: "List the label set of the configured model family",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		classes := emotion.ClassesCREMAD
		family := "CREMA-D"
		if strings.EqualFold(globalConfig.Classes, "ravdess") {
			classes = emotion.ClassesRAVDESS
			family = "RAVDESS"
		}

		fmt.Printf("%s model, %d classes (output order is the decoding contract):\n\n", family, len(classes))
		for i, label := range classes {
			meta := emotion.MetadataFor(label)
			style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(meta.Color))
			fmt.Printf("  %d  %s %-10s %s  %s\n", i, meta.Emoji, style.Render(string(label)), meta.Color, meta.Icon)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(emotionsCmd)
}
