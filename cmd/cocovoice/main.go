package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leonardotrapani/cocovoice/internal/audio"
	"github.com/leonardotrapani/cocovoice/internal/bus"
	"github.com/leonardotrapani/cocovoice/internal/config"
	"github.com/leonardotrapani/cocovoice/internal/daemon"
	"github.com/leonardotrapani/cocovoice/internal/models/whisper"
	"github.com/leonardotrapani/cocovoice/internal/transcriber"
	"github.com/leonardotrapani/cocovoice/internal/tui"
)

func main() {
	_ = rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "cocovoice",
	Short: "Hands-free wake-word voice prompts for your focused window",
}

func init() {
	rootCmd.AddCommand(
		serveCmd(),
		statusCmd(),
		pauseCmd(),
		resumeCmd(),
		stopCmd(),
		versionCmd(),
		configureCmd(),
		testCmd(),
		modelCmd(),
	)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrInit()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			printBanner(cfg)

			d, err := daemon.New()
			if err != nil {
				return fmt.Errorf("failed to create daemon: %w", err)
			}
			return d.Run()
		},
	}
}

func printBanner(cfg *config.Config) {
	fmt.Println(tui.Logo())
	fmt.Println()
	fmt.Printf("  Wake word    %q\n", cfg.Wake.Word)
	fmt.Printf("  Dispatch     %s\n", strings.Join(cfg.Wake.DispatchWords, ", "))
	fmt.Printf("  Provider     %s (%s)\n", cfg.Transcription.Provider, cfg.Transcription.Model)
	fmt.Printf("  Injection    %s\n", strings.Join(cfg.Injection.Backends, ", "))
	fmt.Println()
	if len(cfg.Wake.DispatchWords) > 0 {
		fmt.Printf("  Say %q, speak your prompt, end with %q.\n",
			cfg.Wake.Word, cfg.Wake.DispatchWords[0])
	}
	fmt.Println()
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get current listener status",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('s')
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func pauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause listening (audio is discarded until resume)",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('p')
			if err != nil {
				return fmt.Errorf("failed to pause: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func resumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume listening",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('r')
			if err != nil {
				return fmt.Errorf("failed to resume: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('q')
			if err != nil {
				return fmt.Errorf("failed to stop daemon: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get protocol version",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('v')
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure()
		},
	}
}

func runConfigure() error {
	cfg, err := config.LoadOrInit()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := tui.Run(cfg)
	if err != nil {
		return fmt.Errorf("configuration wizard error: %w", err)
	}

	if result.Cancelled {
		fmt.Println("Configuration cancelled.")
		return nil
	}

	if err := result.Config.Validate(); err != nil {
		fmt.Printf("Configuration validation failed: %v\n", err)
		return err
	}

	if err := config.Save(result.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved successfully!")

	configPath, _ := config.GetConfigPath()
	fmt.Printf("Config file location: %s\n", configPath)

	saved := result.Config
	if saved.Transcription.Provider == "whisper-cli" &&
		whisper.Lookup(saved.Transcription.Model) != nil &&
		!whisper.IsInstalled(saved.Transcription.Model) {
		fmt.Printf("Model %s is not installed yet, download it with: cocovoice model download %s\n",
			saved.Transcription.Model, saved.Transcription.Model)
	}

	fmt.Println("Restart the daemon to apply: cocovoice stop && cocovoice serve")
	return nil
}

func modelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage local transcription models",
	}
	cmd.AddCommand(modelListCmd(), modelDownloadCmd(), modelRemoveCmd())
	return cmd
}

func modelListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available models and their install state",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := whisper.Dir()
			if err != nil {
				return fmt.Errorf("failed to resolve models directory: %w", err)
			}
			fmt.Printf("Models directory: %s\n\n", dir)
			fmt.Printf("%-12s %-16s %-8s %-12s %s\n", "ID", "NAME", "SIZE", "LANGUAGES", "STATUS")
			for _, info := range whisper.Catalog() {
				languages := "english"
				if info.Multilingual {
					languages = "multilingual"
				}
				status := "-"
				if whisper.IsInstalled(info.ID) {
					status = "installed"
				}
				fmt.Printf("%-12s %-16s %-8s %-12s %s\n", info.ID, info.Name, info.Size, languages, status)
			}
			return nil
		},
	}
}

func modelDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download <model-id>",
		Short: "Download a model from huggingface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelID := args[0]

			info := whisper.Lookup(modelID)
			if info == nil {
				return fmt.Errorf("unknown model: %s (see: cocovoice model list)", modelID)
			}
			if whisper.IsInstalled(modelID) {
				fmt.Printf("Model %s is already installed at %s\n", modelID, whisper.Path(modelID))
				return nil
			}

			fmt.Printf("Downloading %s (%s)...\n", info.Name, info.Size)

			lastPercent := -1
			err := whisper.Download(cmd.Context(), modelID, func(downloaded, total int64) {
				if total <= 0 {
					return
				}
				percent := int(downloaded * 100 / total)
				if percent/10 > lastPercent/10 {
					lastPercent = percent
					fmt.Printf("  %d%% (%d/%d MB)\n", percent, downloaded/1_000_000, total/1_000_000)
				}
			})
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}

			fmt.Printf("Installed %s at %s\n", modelID, whisper.Path(modelID))
			return nil
		},
	}
}

func modelRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <model-id>",
		Short: "Remove a downloaded model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := whisper.Remove(args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed model %s\n", args[0])
			return nil
		},
	}
}

func testCmd() *cobra.Command {
	var seconds int

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Record a short clip and run a one-shot transcription",
		Long: `Diagnostic for the capture and transcription path. Records from the
microphone, reports the device, sample rate and signal level, then
transcribes the clip with a higher beam size than the live loop uses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cmd, seconds)
		},
	}

	cmd.Flags().IntVar(&seconds, "seconds", 3, "recording duration in seconds")
	return cmd
}

func runTest(cmd *cobra.Command, seconds int) error {
	cfg, err := config.LoadOrInit()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	capture := audio.NewCapture(cfg.ToCaptureConfig())
	if err := capture.Start(); err != nil {
		return fmt.Errorf("failed to open microphone: %w", err)
	}
	defer capture.Stop()

	fmt.Printf("Device       %s\n", capture.DeviceName())
	fmt.Printf("Sample rate  %d Hz\n", capture.SampleRate())
	fmt.Printf("Recording for %ds, speak now...\n", seconds)

	select {
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	case <-time.After(time.Duration(seconds) * time.Second):
	}

	samples := capture.Drain()
	capture.Stop()

	rms := audio.RMS(samples)
	fmt.Printf("Captured     %d samples, RMS %.1f", len(samples), rms)
	if rms < cfg.Wake.SilenceThreshold {
		fmt.Printf(" (below silence threshold %.0f)", cfg.Wake.SilenceThreshold)
	}
	fmt.Println()

	if len(samples) == 0 {
		return fmt.Errorf("no audio captured")
	}

	engine, err := transcriber.NewEngine(cfg.ToEngineConfig())
	if err != nil {
		return fmt.Errorf("failed to create transcription engine: %w", err)
	}

	pcm := audio.Resample(samples, capture.SampleRate(), transcriber.TargetRate)
	res, err := engine.Transcribe(cmd.Context(), pcm, cfg.Transcription.DiagBeam)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	fmt.Printf("Language     %s\n", res.Language)
	fmt.Printf("Transcript   %q\n", res.Text)
	return nil
}
