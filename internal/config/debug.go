package config

import "os"

func IsDebug() bool {
	return os.Getenv("THREAD_DEBUG") == "1"
}

func IsJSONLog() bool {
	return os.Getenv("THREAD_LOG_FORMAT") == "json"
}
