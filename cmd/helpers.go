package cmd

import (
	"newsdesk/internal/ai"
	"newsdesk/internal/config"
	"newsdesk/internal/feed"
)

// mode maps a CLI flag value onto a feed mode. Anything but "deep" is
// the standard feed.
func mode(s string) feed.Mode {
	if s == string(feed.ModeDeep) {
		return feed.ModeDeep
	}
	return feed.ModeStandard
}

// newSource builds the feed source from configuration.
func newSource(cfg config.Config) *feed.Source {
	return feed.NewSource(
		cfg.Sheets.BaseURL,
		cfg.Sheets.APIKey,
		feed.SheetRef{SpreadsheetID: cfg.Sheets.Standard.SpreadsheetID, Range: cfg.Sheets.Standard.Range},
		feed.SheetRef{SpreadsheetID: cfg.Sheets.Deep.SpreadsheetID, Range: cfg.Sheets.Deep.Range},
	)
}

// newGenerator builds the insight client, or nil when no key is set.
func newGenerator(cfg config.Config) *ai.Client {
	if cfg.OpenAI.APIKey == "" {
		return nil
	}
	return ai.New(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
}
