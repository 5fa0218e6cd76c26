package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	samples  = []string{"평소 명랑하고 긍정적인 태도가 돋보임.", "", "맡은 역할을 성실히 수행함."}
	criteria = []Criterion{
		{Key: "Q1", Value: "독서를 좋아하고 역사에 관심이 많음"},
		{Key: "Q3", Value: "학급 회장으로 활동함"},
	}
)

func TestBuildIsDeterministic(t *testing.T) {
	a, err := Build(samples, criteria, []string{"성실함", "끈기"}, DefaultOptions())
	require.NoError(t, err)
	b, err := Build(samples, criteria, []string{"성실함", "끈기"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical inputs must yield byte-identical output")
}

func TestBuildRejectsEmptySelection(t *testing.T) {
	_, err := Build(samples, nil, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoCriteriaSelected)
}

func TestBuildEmbedsSamplesByOrdinal(t *testing.T) {
	out, err := Build(samples, criteria, nil, DefaultOptions())
	require.NoError(t, err)

	// Non-empty samples appear verbatim, labeled by ordinal; the empty one
	// is skipped without leaving a gap in numbering.
	assert.Contains(t, out, "[종합의견 예시 1]\n평소 명랑하고 긍정적인 태도가 돋보임.")
	assert.Contains(t, out, "[종합의견 예시 2]\n맡은 역할을 성실히 수행함.")
	assert.NotContains(t, out, "예시 3]")
}

func TestBuildEmbedsCriteriaInOrder(t *testing.T) {
	out, err := Build(samples, criteria, nil, DefaultOptions())
	require.NoError(t, err)

	q1 := strings.Index(out, "Q1: 독서를 좋아하고 역사에 관심이 많음")
	q3 := strings.Index(out, "Q3: 학급 회장으로 활동함")
	require.GreaterOrEqual(t, q1, 0)
	require.Greater(t, q3, q1, "criteria keep appearance order")
}

func TestBuildEmbedsTraits(t *testing.T) {
	out, err := Build(samples, criteria, []string{"성실함", "배려심"}, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out, "성실함, 배려심")

	without, err := Build(samples, criteria, nil, DefaultOptions())
	require.NoError(t, err)
	assert.NotContains(t, without, "주요 특성")
}

func TestBuildCarriesStructuralInstructions(t *testing.T) {
	out, err := Build(samples, criteria, nil, Options{MinChars: 300, MaxChars: 600})
	require.NoError(t, err)

	assert.Contains(t, out, "명사형 어미", "register instruction")
	assert.Contains(t, out, "미래 시제 표현", "future-tense ban")
	assert.Contains(t, out, "300자 이상 600자 이내", "tunable length band")
	assert.Contains(t, out, "임의로 만들어 쓰지 말 것", "no fabrication")
	assert.Contains(t, out, "그대로 복사하지 말 것", "no verbatim sample copying")
}

func TestBuildWithNoUsableSamples(t *testing.T) {
	out, err := Build([]string{"", "  "}, criteria, nil, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out, "제공된 예시 없음")
}
