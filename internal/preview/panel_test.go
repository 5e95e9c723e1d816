package preview

import (
	"fmt"
	"testing"

	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(n int) []model.PanelItem {
	out := make([]model.PanelItem, n)
	for i := range out {
		out[i] = model.PanelItem{
			Kind:    model.KindUploaded,
			FileRef: model.FileRef{ID: fmt.Sprint(i), StoredFilename: fmt.Sprintf("cv%d.pdf", i)},
		}
	}
	return out
}

func TestZeroPanelIsClosed(t *testing.T) {
	var p Panel
	assert.Equal(t, StateClosed, p.State())
	_, ok := p.Current()
	assert.False(t, ok)
	assert.Empty(t, p.Label())

	p.Next()
	p.Prev()
	assert.Equal(t, StateClosed, p.State())
}

func TestOpenRejectsOutOfRange(t *testing.T) {
	var p Panel
	assert.Error(t, p.Open(items(3), 3))
	assert.Error(t, p.Open(items(3), -1))
	assert.Error(t, p.Open(nil, 0))
	assert.False(t, p.IsOpen())
}

func TestCursorIsClampedNotWrapped(t *testing.T) {
	const n = 5
	for i := 0; i < n; i++ {
		var p Panel
		require.NoError(t, p.Open(items(n), i))
		p.Next()
		assert.Equal(t, min(i+1, n-1), p.Cursor(), "next from %d", i)

		var q Panel
		require.NoError(t, q.Open(items(n), i))
		q.Prev()
		assert.Equal(t, max(i-1, 0), q.Cursor(), "prev from %d", i)
	}
}

func TestLastItemOfThree(t *testing.T) {
	var p Panel
	require.NoError(t, p.Open(items(3), 2))

	assert.False(t, p.CanNext())
	assert.True(t, p.CanPrev())
	p.Next()
	assert.Equal(t, 2, p.Cursor())
	assert.Equal(t, "3 / 3", p.Label())

	cur, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, "cv2.pdf", cur.StoredFilename)
}

func TestFirstItemPrevIsNoop(t *testing.T) {
	var p Panel
	require.NoError(t, p.Open(items(3), 0))
	assert.False(t, p.CanPrev())
	p.Prev()
	assert.Equal(t, 0, p.Cursor())
	assert.Equal(t, "1 / 3", p.Label())
}

func TestClicks(t *testing.T) {
	var p Panel
	require.NoError(t, p.Open(items(2), 1))

	p.Click(ClickContent)
	assert.Equal(t, StateOpen, p.State())

	p.Click(ClickOverlay)
	assert.Equal(t, StateClosed, p.State())
	assert.Equal(t, 0, p.Len())
}

func TestOpenSnapshotsTheList(t *testing.T) {
	list := items(2)
	var p Panel
	require.NoError(t, p.Open(list, 0))

	list[0].StoredFilename = "changed.pdf"
	cur, _ := p.Current()
	assert.Equal(t, "cv0.pdf", cur.StoredFilename)
}

func TestReopenFromOpenMovesCursor(t *testing.T) {
	var p Panel
	require.NoError(t, p.Open(items(4), 0))
	require.NoError(t, p.Open(items(4), 3))
	assert.Equal(t, "4 / 4", p.Label())
}
