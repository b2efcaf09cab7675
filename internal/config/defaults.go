package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "./Articles.csv"
	}
	if cfg.Corpus.TitleColumn == "" {
		cfg.Corpus.TitleColumn = "Heading"
	}
	if cfg.Corpus.BodyColumn == "" {
		cfg.Corpus.BodyColumn = "Article"
	}
	if cfg.Search.DefaultTopK == 0 {
		cfg.Search.DefaultTopK = 5
	}
	if cfg.Search.MaxTopK == 0 {
		cfg.Search.MaxTopK = 100
	}
	if cfg.Search.TFIDFWeight == 0 && cfg.Search.BM25Weight == 0 {
		cfg.Search.TFIDFWeight = 0.5
		cfg.Search.BM25Weight = 0.5
	}
	if cfg.Search.MaxVocabulary == 0 {
		cfg.Search.MaxVocabulary = 5000
	}
	if cfg.Search.K1 == 0 {
		cfg.Search.K1 = 1.5
	}
	if cfg.Search.B == 0 {
		cfg.Search.B = 0.75
	}
}
