package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/adrianliechti/contentkit/pkg/index"
	"github.com/adrianliechti/contentkit/pkg/index/bolt"

	"github.com/stretchr/testify/require"
)

func TestPersistence(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "index.db")

	c, err := bolt.New(path)
	require.NoError(t, err)

	err = c.Index(ctx,
		index.Document{ID: "dryer_chunk0", FileName: "dryer.pdf", SectionTitle: "Lint filter", Content: "# Lint filter\n\nEmpty the lint filter after every cycle."},
		index.Document{ID: "dryer_chunk1", FileName: "dryer.pdf", SectionTitle: "Programs", Content: "# Programs\n\nChoose a program."},
	)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = bolt.New(path)
	require.NoError(t, err)
	defer c.Close()

	results, err := c.Query(ctx, "lint filter", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "dryer_chunk0", results[0].ID)
	require.Equal(t, "Lint filter", results[0].SectionTitle)
	require.False(t, results[0].IndexedAt.IsZero())

	limit := 1

	page, err := c.List(ctx, &index.ListOptions{Limit: &limit})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "dryer_chunk0", page.Items[0].ID)
	require.Equal(t, "dryer_chunk0", page.Cursor)

	page, err = c.List(ctx, &index.ListOptions{Limit: &limit, Cursor: page.Cursor})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "dryer_chunk1", page.Items[0].ID)

	require.NoError(t, c.Delete(ctx, "dryer_chunk0"))

	page, err = c.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
}

func TestNewRequiresPath(t *testing.T) {
	_, err := bolt.New("")
	require.Error(t, err)
}
