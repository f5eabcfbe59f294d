package common

const (
	// LogSystemToken describes system log entry.
	LogSystemToken = "system"
	// LogSwitchNameToken describes switch name log entry.
	LogSwitchNameToken = "switch"
	// LogSwitchIDToken describes accessory ID log entry.
	LogSwitchIDToken = "accessory_id"
	// LogCommandToken describes shell command log entry.
	LogCommandToken = "cmd"
	// LogStateToken describes power state log entry.
	LogStateToken = "state"
	// LogStderrToken describes captured stderr log entry.
	LogStderrToken = "stderr"
	// LogIntervalToken describes polling interval log entry.
	LogIntervalToken = "interval"
	// LogSessionToken describes wizard session log entry.
	LogSessionToken = "session"
	// LogURLToken describes URL log entry.
	LogURLToken = "url"
	// LogTopicToken describes MQTT topic log entry.
	LogTopicToken = "topic"
	// LogUserToken describes API user log entry.
	LogUserToken = "user"
)

const (
	// LogErrorToken describes error log entry.
	LogErrorToken = "error"
	// LogFileToken describes file log entry.
	LogFileToken = "file"
	// LogFieldToken describes field log entry.
	LogFieldToken = "field"
)
