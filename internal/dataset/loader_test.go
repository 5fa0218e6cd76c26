package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

const sampleCSV = "학번 네자리,이름,성별,Q1,Q2,Q10\n" +
	"1101,홍길동,남,독서를 좋아함,,수학에 흥미\n" +
	"\n" +
	"1102,김영희,여,발표를 잘함,봉사활동,\n"

func TestLoadCSV(t *testing.T) {
	rows, schema, err := LoadReader(strings.NewReader(sampleCSV), ".csv", EncodingUTF8)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "홍길동", rows[0]["이름"])
	assert.Equal(t, "수학에 흥미", rows[0]["Q10"])
	assert.Equal(t, "", rows[1]["Q10"])

	assert.Equal(t, []string{"학번 네자리", "이름", "성별"}, schema.Identity)
	assert.Equal(t, []string{"Q1", "Q2", "Q10"}, schema.Criteria)
}

func TestLoadCSVStripsBOM(t *testing.T) {
	_, schema, err := LoadReader(strings.NewReader("\uFEFF"+sampleCSV), ".csv", EncodingUTF8)
	require.NoError(t, err)
	assert.Equal(t, "학번 네자리", schema.Identity[0])
}

func TestLoadCSVEmptyData(t *testing.T) {
	_, _, err := LoadReader(strings.NewReader("이름,Q1\n"), ".csv", EncodingUTF8)
	assert.ErrorIs(t, err, ErrEmptyData)

	_, _, err = LoadReader(strings.NewReader(""), ".csv", EncodingUTF8)
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, _, err := LoadReader(strings.NewReader("x"), ".pdf", EncodingUTF8)
	assert.ErrorIs(t, err, ErrUnsupportedExtension)
}

func TestLoadCSVRaggedRows(t *testing.T) {
	csv := "이름,Q1,Q2\n철수,답변\n"
	rows, _, err := LoadReader(strings.NewReader(csv), ".csv", EncodingUTF8)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "답변", rows[0]["Q1"])
	assert.Equal(t, "", rows[0]["Q2"])
}

func TestLoadCSVEUCKR(t *testing.T) {
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, korean.EUCKR.NewEncoder())
	_, err := w.Write([]byte("이름,Q1\n철수,성실함\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rows, _, err := LoadReader(&buf, ".csv", EncodingEUCKR)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "성실함", rows[0]["Q1"])
}

func TestSchemaClassification(t *testing.T) {
	s := classify([]string{"이름", "Q1", "Quality", "Q9항목", "학번"})
	// "Quality" has no digit after Q and stays an identity field.
	assert.Equal(t, []string{"이름", "Quality", "학번"}, s.Identity)
	assert.Equal(t, []string{"Q1", "Q9항목"}, s.Criteria)
	assert.True(t, s.IsCriterion("Q1"))
	assert.False(t, s.IsCriterion("Quality"))
}
