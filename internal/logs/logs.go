package logs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"webconfig/internal/structs"
)

// InitLogrus configures the global logger. When endpoint is set, warnings and
// errors are also posted there as JSON.
func InitLogrus(level, endpoint, device string) {
	SetLevel(level)
	logrus.SetReportCaller(true)
	logrus.SetOutput(os.Stdout)
	if endpoint != "" {
		logrus.AddHook(NewLoggingHook(endpoint, device))
	}
}

// SetLevel applies a level name such as "debug" or "warn". Unknown names
// leave the level at info.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

type LoggingHook struct {
	endpoint string
	device   string
	client   *http.Client
}

func NewLoggingHook(endpoint, device string) *LoggingHook {
	return &LoggingHook{
		endpoint: endpoint,
		device:   device,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *LoggingHook) Fire(entry *logrus.Entry) error {
	// Create log entry.
	log := &structs.LogEntry{
		Device:  h.device,
		Level:   entry.Level.String(),
		Message: entry.Message,
		Time:    entry.Time,
	}
	if entry.Caller != nil {
		log.Caller = entry.Caller.Function
	}

	go func() {
		b := new(bytes.Buffer)
		json.NewEncoder(b).Encode(log)

		resp, err := h.client.Post(h.endpoint, "application/json", b)
		if err != nil {
			// Not logged through logrus, that would fire the hook again.
			os.Stderr.WriteString("There was an error when sending the log event: " + err.Error() + "\n")
			return
		}
		resp.Body.Close()
	}()

	return nil
}

// Levels define on which log levels this LoggingHook would trigger
func (h *LoggingHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.WarnLevel, logrus.ErrorLevel}
}
