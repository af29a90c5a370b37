package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewTranscribeCmd creates the standalone audio transcription command
func NewTranscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe an audio recording to text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			provider, err := app.provider()
			if err != nil {
				return err
			}

			audio, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read audio file: %w", err)
			}

			transcript, err := provider.TranscribeAudio(cmd.Context(), audio)
			if err != nil {
				return fmt.Errorf("failed to transcribe audio: %w", err)
			}
			fmt.Println(transcript)
			return nil
		},
	}
}
