package config

import (
	"strings"

	"github.com/dmitrijs2005/loginsystem/internal/flagx"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// EnvPrefix marks the environment variables read by Load. A double
// underscore separates nesting levels: LOGINSYSTEM_LOG__LEVEL sets log.level.
const EnvPrefix = "LOGINSYSTEM_"

// parseSources overlays cfg with the YAML file selected by -c/-config and
// with the environment. Keys absent from both keep their current values.
func parseSources(cfg *Config, args, environ []string) error {
	k := koanf.New(".")

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return errors.Wrapf(err, "read config file %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
		EnvironFunc:   func() []string { return environ },
	}), nil); err != nil {
		return errors.Wrap(err, "load env variables")
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
		},
	}); err != nil {
		return errors.Wrap(err, "decode config")
	}

	return nil
}

// envKey maps LOGINSYSTEM_BACKUP__S3__BUCKET to backup.s3.bucket.
func envKey(k, v string) (string, any) {
	k = strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	return strings.ReplaceAll(k, "__", "."), v
}
