package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "http://localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", "http://localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestStringFlag(t *testing.T) {
	assert.Equal(t, "a.json", StringFlag([]string{"-a", "x", "-c", "a.json"}, "c", "config"))
	assert.Equal(t, "b.json", StringFlag([]string{"--config=b.json"}, "c", "config"))
	assert.Equal(t, "", StringFlag([]string{"-a", "x"}, "c", "config"))
}

func TestConfigAndEnvFileFlags(t *testing.T) {
	args := []string{"-l", "debug", "-config", "cfg.json", "-env", ".env.local"}
	assert.Equal(t, "cfg.json", ConfigFileFlag(args))
	assert.Equal(t, ".env.local", EnvFileFlag(args))
}
