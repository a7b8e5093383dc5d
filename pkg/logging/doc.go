// Package logging is the subsystem-tagged logger used by the authcode CLI.
//
// It is a thin layer over log/slog. Every entry carries a subsystem attribute
// so output can be filtered per component:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Config", "Loaded configuration from %s", path)
//	logging.Error("Login", err, "Token exchange failed")
//
// Libraries that take a *slog.Logger, such as pkg/oauth, get one through
// Logger:
//
//	client, err := oauth.NewClient(provider, id, secret, redirect,
//		oauth.WithLogger(logging.Logger("OAuth")))
//
// Credentials must never be passed as log arguments. Tokens from pkg/oauth
// implement slog.LogValuer and redact themselves.
package logging
