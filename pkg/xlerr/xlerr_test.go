package xlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf_Tagged(t *testing.T) {
	err := New(Sheet, "sheet '%s' not found", "Data")
	k, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, Sheet, k)
	require.Equal(t, "sheet 'Data' not found", MessageOf(err))
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := Wrap(FileNotFound, errors.New("stat failed"), "file not found: /tmp/x.xlsx")
	err := fmt.Errorf("open workbook: %w", inner)

	k, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, FileNotFound, k)
	require.True(t, Is(err, FileNotFound))
	require.False(t, Is(err, Workbook))
}

func TestKindOf_Untagged(t *testing.T) {
	_, ok := KindOf(errors.New("boom"))
	require.False(t, ok)
	require.Equal(t, "boom", MessageOf(errors.New("boom")))
}
