// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/vprotasov/armory-take-home/internal/logmerge"
	"github.com/vprotasov/armory-take-home/internal/sink"
)

// Config holds the tunables for a merge run.
type Config struct {
	// QueueCapacity bounds the output queue between the merge engine
	// and the writer goroutine.
	QueueCapacity int `mapstructure:"queue_capacity"`

	// ParseThreshold is the file count above which timestamps are
	// parsed to epoch milliseconds instead of compared as strings.
	ParseThreshold int `mapstructure:"parse_threshold"`

	// Extension filters which files in the source directory are merged.
	Extension string `mapstructure:"extension"`

	// DiagnosticsFile receives all error and warning output, keeping it
	// out of the merged stream on stdout.
	DiagnosticsFile string `mapstructure:"diagnostics_file"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		QueueCapacity:   sink.DefaultCapacity,
		ParseThreshold:  logmerge.DefaultParseThreshold,
		Extension:       ".log",
		DiagnosticsFile: "error_log.txt",
	}
}

// Load reads configuration from an optional config file and environment
// variables. Environment variables use the prefix "LOGMERGE" and the
// dot character in keys is replaced by an underscore. For example,
// "queue_capacity" becomes "LOGMERGE_QUEUE_CAPACITY".
func Load() (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("LOGMERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)
	_ = v.ReadInConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(parts, tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
