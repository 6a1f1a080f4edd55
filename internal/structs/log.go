package structs

import "time"

type LogEntry struct {
	Device  string    `json:"device"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
	Caller  string    `json:"caller"`
	Time    time.Time `json:"time"`
}
