package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".", cfg.BaseDir)
	assert.Equal(t, "data_set_description_schema.yaml", cfg.Schema)
	assert.Equal(t, "data_set_description_field_descriptions.yaml", cfg.Descriptions)
	assert.Equal(t, "data_set_descriptions", cfg.CorpusDir)
	assert.Equal(t, "data_set_description_template.yaml", cfg.Template)
	assert.Equal(t, "*.yaml", cfg.Pattern)
	assert.Nil(t, cfg.Log.Timestamps)
}

func TestConfigWithDefaults(t *testing.T) {
	t.Run("fills empty values", func(t *testing.T) {
		cfg := (&Config{Schema: "custom.yaml"}).WithDefaults()

		assert.Equal(t, "custom.yaml", cfg.Schema)
		assert.Equal(t, DefaultDescriptions, cfg.Descriptions)
		assert.Equal(t, DefaultPattern, cfg.Pattern)
	})

	t.Run("does not modify receiver", func(t *testing.T) {
		orig := &Config{}
		_ = orig.WithDefaults()
		assert.Empty(t, orig.Schema)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty is valid", cfg: Config{}},
		{name: "defaults are valid", cfg: *DefaultConfig()},
		{name: "whitespace path", cfg: Config{Schema: "  "}, wantErr: "schema: must not be empty"},
		{name: "bad glob", cfg: Config{Pattern: "[a"}, wantErr: "pattern: invalid glob"},
		{name: "pattern with directory", cfg: Config{Pattern: "sub/*.yaml"}, wantErr: "must match file names"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidationErrors_Empty(t *testing.T) {
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())
}
