package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps flag names to configuration keys
var flagKeys = map[string]string{
	"token-file":             "github.token_file",
	"timeout":                "fetch.timeout",
	"max-rate-limit-retries": "fetch.max_rate_limit_retries",
	"max-rate-limit-wait":    "fetch.max_rate_limit_wait",
	"requests-per-second":    "fetch.requests_per_second",
	"max-pages":              "finder.max_pages",
	"checksum-batch-size":    "finder.checksum_batch_size",
	"tables":                 "finder.tables_file",
	"deadline":               "pipeline.deadline",
	"format":                 "output.format",
	"log-level":              "log.level",
}

// RegisterFlags adds the persistent flags shared by every command
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "config file path (default ./pyfinder.yaml)")
	flags.String("token-file", "", "file holding the GitHub token when GITHUB_TOKEN is unset")
	flags.Duration("timeout", 0, "per-request timeout")
	flags.Int("max-rate-limit-retries", 0, "retries allowed after rate limiting")
	flags.Duration("max-rate-limit-wait", 0, "cumulative rate-limit wait allowed (0 = unlimited)")
	flags.Float64("requests-per-second", 0, "client-side request pacing (0 = unlimited)")
	flags.Int("max-pages", 0, "release pages to walk")
	flags.Int("checksum-batch-size", 0, "concurrent checksum manifest fetches")
	flags.String("tables", "", "YAML file overriding the triple mapping tables")
	flags.Duration("deadline", 0, "overall run deadline")
	flags.StringP("format", "f", "", "output format: rust, json or yaml")
	flags.String("log-level", "", "log level: debug, info, warn or error")
}

// BindFlags binds flags to v. Only flags the user set override other sources.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// ConfigFile returns the --config value
func ConfigFile(flags *pflag.FlagSet) string {
	path, _ := flags.GetString("config")
	return path
}
