package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type render func(string) string

func TestTable_Lookup(t *testing.T) {
	table := New[string, render]("format")
	require.NoError(t, table.Register(func(s string) string { return "txt:" + s }, "text", "txt"))
	require.NoError(t, table.Register(func(s string) string { return "json:" + s }, "json"))

	f, err := table.Lookup("txt")
	require.NoError(t, err)
	require.Equal(t, "txt:a", f("a"))

	f, err = table.Lookup("json")
	require.NoError(t, err)
	require.Equal(t, "json:a", f("a"))

	_, err = table.Lookup("xml")
	require.ErrorIs(t, err, ErrUnhandledKey)
	require.Contains(t, err.Error(), "format")

	require.Equal(t, []string{"text", "txt", "json"}, table.Keys())
}

func TestTable_Fallback(t *testing.T) {
	table := New[int, string]("codes").
		MustRegister("ok", 200).
		WithFallback("unknown")

	v, err := table.Lookup(200)
	require.NoError(t, err)
	require.Equal(t, "ok", v)

	v, err = table.Lookup(418)
	require.NoError(t, err)
	require.Equal(t, "unknown", v)
}

func TestTable_Duplicate(t *testing.T) {
	table := New[string, int]("n")
	require.NoError(t, table.Register(1, "a"))

	err := table.Register(2, "b", "a")

	require.ErrorIs(t, err, ErrDuplicateKey)
	_, err = table.Lookup("b")
	require.ErrorIs(t, err, ErrUnhandledKey, "a failed registration binds nothing")
	require.Panics(t, func() { table.MustRegister(3, "a") })
}
