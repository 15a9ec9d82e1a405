package config

import (
	"github.com/hyperjump/kotae/internal/responder"
	"github.com/hyperjump/kotae/internal/search"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendSQLite
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/kotae/data/db/corpus.db"
	}
	if cfg.Storage.CorpusPath == "" {
		cfg.Storage.CorpusPath = "/usr/local/var/kotae/data/corpus.csv"
	}
	if cfg.Responder.MatchThreshold == nil {
		t := responder.DefaultMatchThreshold
		cfg.Responder.MatchThreshold = &t
	}
	if cfg.Suggest.Limit == 0 {
		cfg.Suggest.Limit = search.DefaultSuggestionLimit
	}
	if cfg.Suggest.Placeholders == nil {
		cfg.Suggest.Placeholders = append([]string(nil), search.DefaultPlaceholders...)
	}
	if cfg.Watch.DebounceMs == 0 {
		cfg.Watch.DebounceMs = 400
	}
}
