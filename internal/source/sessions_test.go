package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jpdiet/kokkaiharvester/internal/record"
)

const sessionListPage = `<html><body>
<table>
<tr><th>回次</th><th>召集日</th><th>終了日</th><th>会期</th><th>当初日数</th><th>延長日数</th></tr>
<tr>
<td>第217回（常会）</td>
<td>令和7年1月24日</td>
<td>令和7年6月22日</td>
<td>150日間</td>
<td>150日間</td>
<td>－</td>
</tr>
<tr>
<td>第216回（臨時会）</td>
<td>令和6年11月28日</td>
<td>令和6年12月24日</td>
<td>27日間</td>
<td>27日間</td>
<td>－</td>
</tr>
<tr>
<td>第214回（臨時会）</td>
<td>令和6年10月1日</td>
<td>衆議院解散 令和6年10月9日</td>
<td>9日間</td>
<td>17日間</td>
<td>－</td>
</tr>
<tr>
<td>備考</td><td colspan="5">注記</td>
</tr>
</table>
</body></html>`

func TestSessionsFetchAll(t *testing.T) {
	server := serve(t, sessionListPage, "shift_jis")
	s := NewSessions(newTestClient(t), server.URL)

	entries, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, 217, first.SessionNumber)
	assert.Equal(t, "常会", first.SessionType)
	assert.Equal(t, "2025-01-24", first.StartDate)
	assert.Equal(t, "2025-06-22", first.EndDate)
	assert.False(t, first.Dissolved)
	assert.Equal(t, 150, first.TotalDays)
	assert.Equal(t, 150, first.InitialDays)
	assert.Equal(t, 0, first.ExtensionDays)

	// A dissolution cuts the session short
	dissolved := entries[2]
	assert.Equal(t, 214, dissolved.SessionNumber)
	assert.True(t, dissolved.Dissolved)
	assert.Equal(t, "2024-10-09", dissolved.EndDate)
	assert.Equal(t, 9, dissolved.TotalDays)
	assert.Equal(t, 17, dissolved.InitialDays)
}

func TestSessionsFetchAllNoTable(t *testing.T) {
	server := serve(t, "<html><body>工事中</body></html>", "shift_jis")
	s := NewSessions(newTestClient(t), server.URL)

	_, err := s.FetchAll(context.Background())
	assert.Error(t, err)
}

func TestLatestSession(t *testing.T) {
	entries := []record.SessionEntry{
		{SessionNumber: 216},
		{SessionNumber: 217},
		{SessionNumber: 214},
	}
	assert.Equal(t, 217, LatestSession(entries))
	assert.Equal(t, 0, LatestSession(nil))
}
