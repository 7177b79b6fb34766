package pass

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/symhash/internal/ir"
)

type stubPass struct {
	name string
	rec  Recorder
}

func (s *stubPass) Name() string   { return s.name }
func (s *stubPass) Required() bool { return false }
func (s *stubPass) Apply(fn *ir.Function) Result {
	return Skip(fn.Name, SkipNone)
}

func stubFactory(name string) Factory {
	return func(rec Recorder) FunctionPass { return &stubPass{name: name, rec: rec} }
}

func TestRegistryRegisterAndNew(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("b-pass", stubFactory("b-pass")))
	require.NoError(t, reg.Register("a-pass", stubFactory("a-pass")))

	assert.Equal(t, []string{"a-pass", "b-pass"}, reg.Names())
	assert.True(t, reg.Has("a-pass"))
	assert.False(t, reg.Has("c-pass"))

	p, err := reg.New("a-pass", nil)
	require.NoError(t, err)
	assert.Equal(t, "a-pass", p.Name())
	assert.IsType(t, NopRecorder{}, p.(*stubPass).rec, "nil recorder is replaced")
}

func TestRegistryUnknownPass(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.New("nope", nil)
	assert.ErrorIs(t, err, ErrUnknownPass)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestRegistryRejectsBadRegistrations(t *testing.T) {
	reg := NewRegistry()

	assert.Error(t, reg.Register("", stubFactory("x")))
	assert.Error(t, reg.Register("x", nil))

	require.NoError(t, reg.Register("x", stubFactory("x")))
	assert.ErrorIs(t, reg.Register("x", stubFactory("x")), ErrDuplicatePass)
}

func TestRegistryLoadRecordsOnlyOnSuccess(t *testing.T) {
	reg := NewRegistry()
	c := &Collector{}

	failing := Plugin{Name: "Broken", Register: func(*Registry) error { return errors.New("boom") }}
	err := reg.Load(failing, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
	assert.Empty(t, c.Events())
	assert.Empty(t, reg.Plugins())

	ok := Plugin{Name: "Stub", Version: "1", Register: func(r *Registry) error {
		return r.Register("stub", stubFactory("stub"))
	}}
	require.NoError(t, reg.Load(ok, c))
	require.Len(t, c.Events(), 1)
	assert.Equal(t, Event{Kind: EventPluginLoaded, Plugin: "Stub"}, c.Events()[0])
	require.Len(t, reg.Plugins(), 1)
	assert.Equal(t, "Stub", reg.Plugins()[0].Name)
}

func TestRegistryLoadWithoutHook(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.Load(Plugin{Name: "Empty"}, nil))
}
