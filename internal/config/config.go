package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"webconfig/internal/render"
	"webconfig/internal/util"
)

const settingsFile = "settings.yml"

// sampleSchema is written when no schema file exists yet.
const sampleSchema = `[
  {"name": "ssid", "label": "WLAN name", "type": 0, "default": ""},
  {"name": "pwd", "label": "WLAN password", "type": 1, "default": ""},
  {"name": "interval", "label": "Report interval (s)", "type": 2, "min": 1, "max": 3600, "default": "60"},
  {"name": "led", "label": "Status LED", "type": 4, "default": "1"},
  {"name": "mode", "label": "Mode", "type": 8, "default": "auto",
   "options": [{"v": "auto", "l": "Automatic"}, {"v": "manual", "l": "Manual"}]}
]
`

func setDefaults(dir string) {
	viper.SetDefault("server.address", "0.0.0.0:8080")
	viper.SetDefault("form.schema_file", filepath.Join(dir, "schema.json"))
	viper.SetDefault("form.values_file", filepath.Join(dir, "WebConf.conf"))
	viper.SetDefault("form.identity", "")

	labels := render.DefaultLabels()
	viper.SetDefault("form.title", labels.Title)
	viper.SetDefault("form.identity_label", labels.Identity)
	viper.SetDefault("form.save_label", labels.Save)
	viper.SetDefault("form.restart_label", labels.Restart)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.endpoint", "")
}

// InitConfig reads dir/settings.yml, creating it from the defaults first when
// it does not exist.
func InitConfig(fs afero.Fs, dir string) error {
	viper.SetFs(fs)
	setDefaults(dir)

	// Check if config file exists. If not create.
	path := filepath.Join(dir, settingsFile)
	if _, err := fs.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, "error checking %s", path)
		}
		if err := createConfig(fs, path); err != nil {
			return err
		}
	}

	viper.SetConfigName("settings")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dir)

	if err := viper.ReadInConfig(); err != nil {
		return errors.Wrap(err, "There was an error while trying to read the config")
	}
	return nil
}

func createConfig(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "error creating directory for %s", path)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return errors.Wrap(err, "There was an error while creating the config file")
	}
	logrus.Infof("Created settings file %s", path)
	return nil
}

func ListenAddress() string {
	return viper.GetString("server.address")
}

func SchemaFile() string {
	return viper.GetString("form.schema_file")
}

func ValuesFile() string {
	return viper.GetString("form.values_file")
}

// Identity is the configured device name. Empty means it is derived from the
// network hardware.
func Identity() string {
	return viper.GetString("form.identity")
}

func LogLevel() string {
	return viper.GetString("log.level")
}

func LogEndpoint() string {
	return viper.GetString("log.endpoint")
}

func Labels() render.Labels {
	return render.Labels{
		Title:    viper.GetString("form.title"),
		Identity: viper.GetString("form.identity_label"),
		Save:     viper.GetString("form.save_label"),
		Restart:  viper.GetString("form.restart_label"),
	}
}

// LoadSchema returns the content of the schema file, writing a sample schema
// first if there is none.
func LoadSchema(fs afero.Fs) (string, error) {
	path := SchemaFile()
	if err := util.CreateFileIfNotExist(fs, path, []byte(sampleSchema)); err != nil {
		return "", err
	}

	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", errors.Wrapf(err, "error reading schema %s", path)
	}
	return string(b), nil
}
