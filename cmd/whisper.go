package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mak8427/poetrade/trade"
)

var whisperToken string

// whisperCmd represents the whisper command
var whisperCmd = &cobra.Command{
	Use:   "whisper",
	Short: "Contact a listing's seller",
	Long: `Send a whisper to the seller of a listing. The whisper token comes from
a fetched listing (the whisper_token field in search output).`,
	PreRunE: initializeApp,
	RunE:    runWhisper,
}

func init() {
	rootCmd.AddCommand(whisperCmd)

	whisperCmd.Flags().StringVar(&whisperToken, "token", "", "whisper token of the listing")
	whisperCmd.MarkFlagRequired("token")
}

func runWhisper(cmd *cobra.Command, args []string) error {
	res, err := client.Whisper(cmd.Context(), trade.ItemListing{WhisperToken: whisperToken})
	if err != nil {
		return err
	}

	if res.Error != nil {
		return fmt.Errorf("whisper rejected: %s (code %d)", res.Error.Message, res.Error.Code)
	}

	fmt.Println("✓ Whisper sent!")
	return nil
}
