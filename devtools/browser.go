package devtools

import (
	"github.com/go-rod/rod/lib/launcher"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// resolveBrowser returns the browser executable to launch. An explicit
// path wins; otherwise a cached or downloaded Chromium is used when
// autoDownload is set, and a browser found in standard locations when not.
// An empty result leaves discovery to chromedp.
func resolveBrowser(cfg converterConfig) (string, error) {
	if cfg.chromePath != "" {
		return cfg.chromePath, nil
	}
	if cfg.autoDownload {
		// Stored in ~/.cache/rod/browser (Unix) or %APPDATA%\rod\browser (Windows).
		path, err := launcher.NewBrowser().Get()
		if err != nil {
			return "", errors.Wrap(err, "chromepdf: downloading browser")
		}
		cfg.logger.Debug("Using downloaded browser", zap.String("path", path))
		return path, nil
	}
	if path, ok := launcher.LookPath(); ok {
		cfg.logger.Debug("Found browser", zap.String("path", path))
		return path, nil
	}
	return "", nil
}
