package flagx

import (
	"os"
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
			args:         []string{"-c", "conf.json", "-a", "http://localhost:8000/api"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.json", "-a", "x"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next flag is not a value",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "url value containing equals stays attached",
			args:         []string{"-a", "http://h/api?x=1"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", "http://h/api?x=1"},
		},
		{
			name:         "several allowed flags keep order",
			args:         []string{"-t", "10", "-c", "conf.json", "--other", "x", "-i", "3"},
			allowedFlags: []string{"-c", "-t", "-i"},
			want:         []string{"-t", "10", "-c", "conf.json", "-i", "3"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "repeated flag preserved",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigPath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short flag", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", ConfigPath(""))
	})

	t.Run("long flag", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", ConfigPath(""))
	})

	t.Run("last flag wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", ConfigPath(""))
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_PATH", "/env/cfg.json")
		os.Args = []string{"testbin", "-a", "x"}
		assert.Equal(t, "/env/cfg.json", ConfigPath("TEST_CONFIG_PATH"))
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_PATH", "/env/cfg.json")
		os.Args = []string{"testbin", "-c", "/flag.json"}
		assert.Equal(t, "/flag.json", ConfigPath("TEST_CONFIG_PATH"))
	})

	t.Run("nothing given", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1"}
		assert.Empty(t, ConfigPath(""))
	})
}
