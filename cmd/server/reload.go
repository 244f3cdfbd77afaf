// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package main

import (
	"github.com/tomtom215/fraudguard/internal/config"
	"github.com/tomtom215/fraudguard/internal/logging"
)

// watchLogLevel re-reads the config file on change and applies the new log
// level. Other settings require a restart.
func watchLogLevel() {
	path := config.FilePath()
	if path == "" {
		return
	}
	err := config.WatchConfigFile(path, func() { reloadLogLevel(config.Load) })
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch unavailable")
		return
	}
	logging.Info().Str("path", path).Msg("Watching config file for log level changes")
}

func reloadLogLevel(load func() (*config.Config, error)) {
	cfg, err := load()
	if err != nil {
		logging.Warn().Err(err).Msg("Ignoring invalid config file change")
		return
	}
	if cfg.Logging.Level == logging.GetLevel().String() {
		return
	}
	logging.SetLevelString(cfg.Logging.Level)
	logging.Info().Str("level", cfg.Logging.Level).Msg("Log level changed")
}
