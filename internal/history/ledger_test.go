package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAppendPreservesOrder(t *testing.T) {
	l := NewLedger()
	l.Append("s1", "첫 번째")
	l.Append("s1", "두 번째")
	l.Append("s2", "다른 학생")

	entries := l.Entries("s1")
	require.Len(t, entries, 2)
	assert.Equal(t, "첫 번째", entries[0].Text)
	assert.Equal(t, "두 번째", entries[1].Text)
	assert.False(t, entries[1].CreatedAt.Before(entries[0].CreatedAt))

	require.Len(t, l.Entries("s2"), 1)
}

func TestEditKeepsPositionAndTimestamp(t *testing.T) {
	l := NewLedger()
	l.Append("s1", "원본")
	l.Append("s1", "나중 것")
	before := l.Entries("s1")[0].CreatedAt

	require.True(t, l.Edit("s1", 0, "수정본"))

	entries := l.Entries("s1")
	assert.Equal(t, "수정본", entries[0].Text)
	assert.Equal(t, before, entries[0].CreatedAt)
	assert.Equal(t, "나중 것", entries[1].Text)

	assert.False(t, l.Edit("s1", 5, "x"))
	assert.False(t, l.Edit("s1", -1, "x"))
	assert.False(t, l.Edit("ghost", 0, "x"))
}

func TestFinalIsValueSnapshot(t *testing.T) {
	l := NewLedger()
	l.Append("s1", "생성된 의견")
	l.MarkFinal("s1", "생성된 의견")

	// Editing the history entry must not retroactively change the final.
	require.True(t, l.Edit("s1", 0, "편집된 의견"))

	final, ok := l.Final("s1")
	require.True(t, ok)
	assert.Equal(t, "생성된 의견", final)

	l.MarkFinal("s1", "편집된 의견")
	final, _ = l.Final("s1")
	assert.Equal(t, "편집된 의견", final)
}

func TestClearFinal(t *testing.T) {
	l := NewLedger()
	l.MarkFinal("s1", "의견")
	l.ClearFinal("s1")
	_, ok := l.Final("s1")
	assert.False(t, ok)

	l.ClearFinal("ghost")
}

func TestFinalCountSkipsBlank(t *testing.T) {
	l := NewLedger()
	l.MarkFinal("s1", "의견")
	l.MarkFinal("s2", "   ")
	l.MarkFinal("s3", "")
	assert.Equal(t, 1, l.FinalCount())
}

func TestRestoreRoundTrip(t *testing.T) {
	l := NewLedger()
	l.Append("s1", "하나")
	l.Append("s1", "둘")
	l.MarkFinal("s1", "둘")

	restored := NewLedger()
	restored.Restore(l.AllEntries(), l.Finals())

	assert.Equal(t, l.AllEntries(), restored.AllEntries())
	assert.Equal(t, l.Finals(), restored.Finals())

	// Mutating the restored ledger must not leak into the source.
	restored.Append("s1", "셋")
	assert.Len(t, l.Entries("s1"), 2)
}
