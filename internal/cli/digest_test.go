package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/symhash/internal/testutil"
)

func TestDigestText(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewDigestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"getHello", "main"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t,
		testutil.DigestGetHello+"  getHello\n"+testutil.DigestMain+"  main\n",
		buf.String())
}

func TestDigestJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewDigestCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"computeChecksum"})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string        `json:"status"`
		Data   []DigestEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "b13a48e50df9ad2ffbc96a6784c8166e", resp.Data[0].Digest)
}

func TestDigestRequiresName(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewDigestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}
