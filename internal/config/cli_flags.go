package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	cmd.PersistentFlags().Bool("headless", DefaultHeadless, "Run the browser headless (ads are served less reliably)")
	cmd.PersistentFlags().Bool("stealth", DefaultStealthPatches, "Apply the stealth patch layer")
	cmd.PersistentFlags().Bool("chrome-channel", DefaultUseChromeChannel, "Prefer an installed full Chrome over bundled Chromium")
	cmd.PersistentFlags().Int("loads", DefaultNumLoads, "Page loads per video for DOM corroboration")
	cmd.PersistentFlags().Bool("methodology", false, "Use the research methodology load count (5)")
	cmd.PersistentFlags().String("chrome-path", "", "Browser executable path (overrides auto-detection)")
	cmd.PersistentFlags().String("proxy", "", "HTTP/SOCKS5 proxy (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", DefaultNavTimeout.String(), "Navigation timeout per page load")
	cmd.PersistentFlags().String("delay", DefaultInterVideoDelay.String(), "Delay between videos in a batch")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
}
