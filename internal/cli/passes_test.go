package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/symhash/internal/pass/md5name"
	"github.com/roach88/symhash/internal/pipeline"
)

func TestPassesText(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewPassesCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, md5name.Name+" (required)")
	assert.Contains(t, out, "Plugin: "+md5name.PluginName)
	assert.Contains(t, out, "Default pipeline: "+pipeline.DefaultText)
}

func TestPassesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewPassesCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string       `json:"status"`
		Data   PassesResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Len(t, resp.Data.Passes, 1)
	assert.Equal(t, PassInfo{Name: md5name.Name, Required: true}, resp.Data.Passes[0])
	require.Len(t, resp.Data.Plugins, 1)
	assert.Equal(t, md5name.PluginName, resp.Data.Plugins[0].Name)
}
