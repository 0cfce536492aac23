package detector

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
)

// FindChrome locates a browser executable across platforms. When
// preferChannel is set, installed full Chrome builds are tried before
// Chromium: the full channel is noticeably better at receiving ads.
func FindChrome(preferChannel bool) string {
	if path := os.Getenv("CHROME_PATH"); path != "" {
		if isExecutable(path) {
			log.Debug().Str("path", path).Msg("Browser found via CHROME_PATH")
			return path
		}
		log.Warn().Str("path", path).Msg("CHROME_PATH set but not executable")
	}

	chrome, chromium := candidatePaths()
	candidates := append(append([]string{}, chrome...), chromium...)
	if !preferChannel {
		candidates = append(append([]string{}, chromium...), chrome...)
	}

	for _, path := range candidates {
		if isExecutable(path) {
			log.Debug().Str("path", path).Str("os", runtime.GOOS).Msg("Browser found at standard location")
			return path
		}
	}

	if path := findInPath(preferChannel); path != "" {
		log.Debug().Str("path", path).Msg("Browser found in PATH")
		return path
	}

	log.Warn().Str("os", runtime.GOOS).Msg("Browser not found, chromedp will use its default")
	return ""
}

// candidatePaths returns the standard install locations, split into full
// Chrome channel builds and Chromium builds.
func candidatePaths() (chrome, chromium []string) {
	switch runtime.GOOS {
	case "darwin":
		chrome = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Google Chrome Canary.app/Contents/MacOS/Google Chrome Canary",
		}
		chromium = []string{
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}
		if home := os.Getenv("HOME"); home != "" {
			chrome = append(chrome, filepath.Join(home, "Applications/Google Chrome.app/Contents/MacOS/Google Chrome"))
			chromium = append(chromium, filepath.Join(home, "Applications/Chromium.app/Contents/MacOS/Chromium"))
		}

	case "windows":
		for _, base := range []string{os.Getenv("ProgramFiles"), os.Getenv("ProgramFiles(x86)"), os.Getenv("LocalAppData")} {
			if base == "" {
				continue
			}
			chrome = append(chrome, filepath.Join(base, `Google\Chrome\Application\chrome.exe`))
			chromium = append(chromium, filepath.Join(base, `Chromium\Application\chrome.exe`))
		}

	case "linux":
		chrome = []string{
			"/usr/bin/google-chrome-stable",
			"/usr/bin/google-chrome",
		}
		chromium = []string{
			"/usr/bin/chromium-browser",
			"/usr/bin/chromium",
			"/snap/bin/chromium",
		}
		if home := os.Getenv("HOME"); home != "" {
			chrome = append(chrome, filepath.Join(home, ".local/share/flatpak/exports/bin/com.google.Chrome"))
			chromium = append(chromium, filepath.Join(home, ".local/share/flatpak/exports/bin/org.chromium.Chromium"))
		}
	}
	return chrome, chromium
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if runtime.GOOS == "windows" {
		return !info.IsDir()
	}
	return !info.IsDir() && info.Mode()&0111 != 0
}

func findInPath(preferChannel bool) string {
	chrome := []string{"google-chrome-stable", "google-chrome", "chrome"}
	chromium := []string{"chromium", "chromium-browser"}

	names := append(append([]string{}, chrome...), chromium...)
	if !preferChannel {
		names = append(append([]string{}, chromium...), chrome...)
	}

	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
