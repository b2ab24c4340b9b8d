package event

// Type is the coarse severity of a normalized event.
type Type string

const (
	TypeInfo    Type = "INFO"
	TypeError   Type = "ERROR"
	TypeWarning Type = "WARNING"
	TypeDebug   Type = "DEBUG"
)

// Logsource names the input format an event was parsed from.
// Flushed stack traces carry an empty Logsource.
type Logsource string

const (
	LogsourceClient Logsource = "client"
	LogsourceServer Logsource = "server"
)

// NormalizedEvent is the uniform record every input line is turned into.
type NormalizedEvent struct {
	Logsource Logsource      `json:"logsource"`
	Program   string         `json:"program"`
	Host      string         `json:"host"`
	Env       string         `json:"env"`
	Type      Type           `json:"type"`
	Timestamp string         `json:"timestamp"`
	Message   string         `json:"message"`
	ExtraData map[string]any `json:"extraData"`
}

// Line is one raw input line as read by a source.
type Line struct {
	Source string
	Text   string
}
