package core

const (
	BotName          = "ThreadBot"
	BotUserAgent     = "ThreadBot-Agent/0.1"
	BotRepositoryURL = "https://github.com/sandevgo/threadbot"
	BotVersion       = "0.1.0"
)
