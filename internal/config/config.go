// Package config loads booth settings from the environment.
package config

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/gogpu/boothfx"
)

// Config holds every BOOTH_* setting.
type Config struct {
	// Size of the generated test card used when Source is empty. Zero
	// uses 640×480.
	Width  int `mapstructure:"BOOTH_WIDTH" validate:"gte=0"`
	Height int `mapstructure:"BOOTH_HEIGHT" validate:"gte=0"`
	FPS    int `mapstructure:"BOOTH_FPS" validate:"min=1,max=240"`

	Effect    string `mapstructure:"BOOTH_EFFECT" validate:"oneof=normal cartoon neon pixelate avatar glitch rainbow anime"`
	Theme     string `mapstructure:"BOOTH_THEME" validate:"oneof=default tech futuristic celebration"`
	AssetsDir string `mapstructure:"BOOTH_ASSETS_DIR" validate:"required"`
	// Source is a still image used as the camera when set.
	Source string `mapstructure:"BOOTH_SOURCE"`

	Workers int  `mapstructure:"BOOTH_WORKERS" validate:"gte=0"`
	Sound   bool `mapstructure:"BOOTH_SOUND"`
	// LogFile receives logs; the terminal is taken by the preview.
	LogFile  string `mapstructure:"BOOTH_LOG_FILE" validate:"required"`
	LogLevel string `mapstructure:"BOOTH_LOG_LEVEL" validate:"oneof=debug info warn error"`

	CaptureDir  string `mapstructure:"BOOTH_CAPTURE_DIR"`
	JPEGQuality int    `mapstructure:"BOOTH_JPEG_QUALITY" validate:"min=1,max=100"`

	Upload Upload `mapstructure:",squash"`
}

// Upload addresses the bucket captures are uploaded to. An empty bucket
// disables uploads.
type Upload struct {
	Bucket    string `mapstructure:"BOOTH_UPLOAD_BUCKET"`
	Endpoint  string `mapstructure:"BOOTH_UPLOAD_ENDPOINT" validate:"omitempty,url"`
	AccessKey string `mapstructure:"BOOTH_UPLOAD_ACCESS_KEY" validate:"required_with=SecretKey"`
	SecretKey string `mapstructure:"BOOTH_UPLOAD_SECRET_KEY" validate:"required_with=AccessKey"`
	Region    string `mapstructure:"BOOTH_UPLOAD_REGION"`
}

// Enabled reports whether uploads are configured.
func (u Upload) Enabled() bool {
	return u.Bucket != ""
}

// bindEnv binds every mapstructure tag, descending into squashed nested
// structs, so Unmarshal sees variables that have no default.
func bindEnv(v *viper.Viper, typ reflect.Type) error {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("mapstructure")
		if field.Type.Kind() == reflect.Struct && (tag == "" || strings.HasSuffix(tag, ",squash")) {
			if err := bindEnv(v, field.Type); err != nil {
				return err
			}
			continue
		}
		if tag != "" {
			if err := v.BindEnv(tag); err != nil {
				return fmt.Errorf("bind %s: %w", tag, err)
			}
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("BOOTH_FPS", 30)
	v.SetDefault("BOOTH_EFFECT", "normal")
	v.SetDefault("BOOTH_THEME", "default")
	v.SetDefault("BOOTH_ASSETS_DIR", "assets/backgrounds")
	v.SetDefault("BOOTH_WORKERS", 0)
	v.SetDefault("BOOTH_SOUND", true)
	v.SetDefault("BOOTH_LOG_FILE", "boothfx.log")
	v.SetDefault("BOOTH_LOG_LEVEL", "info")
	v.SetDefault("BOOTH_CAPTURE_DIR", "captures")
	v.SetDefault("BOOTH_JPEG_QUALITY", 90)
	v.SetDefault("BOOTH_UPLOAD_REGION", "auto")
}

// Load reads the configuration from the environment, applies defaults and
// validates it.
func Load(ctx context.Context) (*Config, error) {
	v := viper.New()
	if err := bindEnv(v, reflect.TypeOf(Config{})); err != nil {
		return nil, err
	}
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.StructCtx(ctx, cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	boothfx.Logger().Info("config: loaded",
		"effect", cfg.Effect, "theme", cfg.Theme, "fps", cfg.FPS,
		"upload", cfg.Upload.Enabled())
	return &cfg, nil
}
