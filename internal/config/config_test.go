package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/ontoeval/eval"
	"github.com/cayleygraph/ontoeval/internal/load"
	"github.com/cayleygraph/ontoeval/internal/store"
)

func TestDefaultKeepsNoState(t *testing.T) {
	c := Default()
	require.Zero(t, c.CacheSize)
	require.Empty(t, c.StoreBackend)
}

func TestValidate(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	c.Format = "nquads"
	require.NoError(t, c.Validate())

	c.Format = "rdfxml"
	require.True(t, errors.Is(c.Validate(), load.ErrUnknownFormat))

	c = Default()
	c.Timeout = -time.Second
	require.Error(t, c.Validate())
}

func TestMarshalJSON(t *testing.T) {
	c := Default()
	c.Mode = eval.ModeTriples
	c.Timeout = 90 * time.Second
	c.TempDir = "/secret"

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var got struct {
		Mode    string   `json:"mode"`
		Format  string   `json:"format"`
		Formats []string `json:"formats"`
		Timeout string   `json:"timeout"`
		TempDir string   `json:"temp_dir"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "triples", got.Mode)
	require.Equal(t, "turtle", got.Format)
	require.Equal(t, "1m30s", got.Timeout)
	require.Contains(t, got.Formats, "turtle")
	require.Contains(t, got.Formats, "nquads")
	require.Empty(t, got.TempDir)
}

func TestEvaluator(t *testing.T) {
	c := Default()
	c.Mode = eval.ModeTriples
	require.Equal(t, eval.ModeTriples, c.Evaluator().Mode())
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), c)

	for _, tc := range []struct {
		name    string
		data    string
		timeout time.Duration
	}{
		{"string", `{"mode": "triples", "timeout": "2m", "allow_paths": true, "temp_dir": "/tmp/x"}`, 2 * time.Minute},
		{"seconds", `{"mode": "triples", "timeout": 45, "allow_paths": true, "temp_dir": "/tmp/x"}`, 45 * time.Second},
	} {
		t.Run(tc.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "ontoeval.json")
			require.NoError(t, os.WriteFile(file, []byte(tc.data), 0644))

			c, err := Load(file)
			require.NoError(t, err)
			require.Equal(t, eval.ModeTriples, c.Mode)
			require.Equal(t, tc.timeout, c.Timeout)
			require.True(t, c.AllowPaths)
			require.Equal(t, "/tmp/x", c.TempDir)
			require.Equal(t, load.DefaultFormat, c.Format)
			require.Equal(t, Default().ListenHost, c.ListenHost)
		})
	}

	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"mode": "reasoner"}`), 0644))
	_, err = Load(file)
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	c, err := FromViper(v)
	require.NoError(t, err)
	require.Equal(t, Default(), c)

	v.Set(KeyMode, "triples")
	v.Set(KeyFormat, "nquads")
	v.Set(KeyTimeout, "5s")
	v.Set(KeyAllowPaths, true)
	v.Set(KeyMaxBody, 1024)
	c, err = FromViper(v)
	require.NoError(t, err)
	require.Equal(t, eval.ModeTriples, c.Mode)
	require.Equal(t, "nquads", c.Format)
	require.Equal(t, 5*time.Second, c.Timeout)
	require.True(t, c.AllowPaths)
	require.Equal(t, int64(1024), c.MaxBodyBytes)

	v.Set(KeyFormat, "rdfxml")
	_, err = FromViper(v)
	require.True(t, errors.Is(err, load.ErrUnknownFormat))
}

func TestOpenStore(t *testing.T) {
	st, err := Default().OpenStore()
	require.NoError(t, err)
	require.Nil(t, st)

	c := Default()
	c.StoreBackend = store.Memory
	st, err = c.OpenStore()
	require.NoError(t, err)
	require.NotNil(t, st)
	require.NoError(t, st.Close())

	c.StoreBackend = "nowhere"
	_, err = c.OpenStore()
	require.Error(t, err)
}
