package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

// stubRunner records invocations and replays canned results in order.
type stubRunner struct {
	calls   []call
	outputs [][]byte
	errs    []error
}

func (s *stubRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	i := len(s.calls)
	s.calls = append(s.calls, call{name: name, args: args})
	var out []byte
	var err error
	if i < len(s.outputs) {
		out = s.outputs[i]
	}
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return out, err
}

func TestAvailable(t *testing.T) {
	t.Run("daemon answers", func(t *testing.T) {
		s := &stubRunner{outputs: [][]byte{[]byte("Server Version: 27.0")}}
		e := NewWithRunner("docker", s.run)

		require.True(t, e.Available(context.Background()))
		require.Equal(t, []call{{name: "docker", args: []string{"info"}}}, s.calls)
	})

	t.Run("any failure means unavailable", func(t *testing.T) {
		s := &stubRunner{errs: []error{errors.New("Cannot connect to the Docker daemon")}}
		e := NewWithRunner("docker", s.run)

		require.False(t, e.Available(context.Background()))
	})
}

func TestComposeUp(t *testing.T) {
	t.Run("passes file and detach flag", func(t *testing.T) {
		s := &stubRunner{}
		e := NewWithRunner("docker", s.run)

		require.NoError(t, e.ComposeUp(context.Background(), "container/mongo.yml"))
		require.Equal(t, []string{"compose", "-f", "container/mongo.yml", "up", "-d"}, s.calls[0].args)
	})

	t.Run("non-zero exit is surfaced with engine output", func(t *testing.T) {
		s := &stubRunner{
			outputs: [][]byte{[]byte("no such image")},
			errs:    []error{errors.New("exit status 1")},
		}
		e := NewWithRunner("docker", s.run)

		err := e.ComposeUp(context.Background(), "container/mongo.yml")
		require.Error(t, err)
		require.Contains(t, err.Error(), "no such image")
	})
}

func TestComposeDown(t *testing.T) {
	s := &stubRunner{}
	e := NewWithRunner("docker", s.run)

	require.NoError(t, e.ComposeDown(context.Background(), "container/mongo.yml"))
	require.Equal(t, []string{"compose", "-f", "container/mongo.yml", "down"}, s.calls[0].args)
}

func TestServiceStatus(t *testing.T) {
	t.Run("returns raw output", func(t *testing.T) {
		s := &stubRunner{outputs: [][]byte{[]byte(`{"Name":"mongo","State":"running"}`)}}
		e := NewWithRunner("docker", s.run)

		out, err := e.ServiceStatus(context.Background(), "mongo")
		require.NoError(t, err)
		require.Contains(t, out, "running")
		require.Equal(t, []string{"compose", "ps", "mongo", "--format", "json"}, s.calls[0].args)
	})

	t.Run("query failure is an error", func(t *testing.T) {
		s := &stubRunner{errs: []error{errors.New("exit status 1")}}
		e := NewWithRunner("docker", s.run)

		_, err := e.ServiceStatus(context.Background(), "mongo")
		require.Error(t, err)
	})
}
