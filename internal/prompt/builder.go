// Package prompt assembles the instruction text sent to the LLM. Build is a
// pure function: identical inputs produce byte-identical output, so a
// regenerate with unchanged selections reproduces the exact request.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCriteriaSelected is returned when generation is attempted with zero
// selected criterion items.
var ErrNoCriteriaSelected = errors.New("no criterion items selected")

// Criterion is one selected survey item, key and response text.
type Criterion struct {
	Key   string
	Value string
}

// Options carries the tunable constants of the builder.
type Options struct {
	// Character-length band for the generated comment, spaces included.
	MinChars int
	MaxChars int
}

// DefaultOptions matches the band used by the record-book guidelines.
func DefaultOptions() Options {
	return Options{MinChars: 400, MaxChars: 500}
}

// Build assembles the full instruction text from the style samples, the
// student's selected criteria, and the chosen traits.
//
// The output always contains, as literal instructions: the nominal-ending
// sentence register (~함/~임), the ban on future-tense phrasing, the
// character-length band, the ban on fabricating facts absent from the
// selected criteria, and the ban on copying style-sample sentences
// verbatim. Style samples are labeled by ordinal and govern tone only.
func Build(styleSamples []string, criteria []Criterion, traits []string, opts Options) (string, error) {
	if len(criteria) == 0 {
		return "", ErrNoCriteriaSelected
	}
	if opts.MinChars <= 0 || opts.MaxChars <= 0 {
		d := DefaultOptions()
		if opts.MinChars <= 0 {
			opts.MinChars = d.MinChars
		}
		if opts.MaxChars <= 0 {
			opts.MaxChars = d.MaxChars
		}
	}

	var b strings.Builder
	b.WriteString(directives(opts))
	b.WriteString("\n\n")
	b.WriteString(styleSection(styleSamples))
	b.WriteString("\n\n---\n\n")
	b.WriteString("## 학생 자기평가 설문 응답:\n")
	for i, c := range criteria {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s: %s", c.Key, c.Value)
	}
	if len(traits) > 0 {
		b.WriteString("\n\n## 교사가 관찰한 학생의 주요 특성:\n")
		b.WriteString(strings.Join(traits, ", "))
		b.WriteString("\n(위 특성들을 자연스럽게 반영하여 작성해주세요)")
	}
	b.WriteString("\n\n---\n\n")
	b.WriteString(closing(opts))
	return b.String(), nil
}

func directives(opts Options) string {
	return fmt.Sprintf(`# 명령

학생의 '행동특성 및 종합의견'을 교육부 기재 요령에 맞춰 **구체적이고 긍정적**으로 작성해주세요. 다음 지침을 엄수하세요.

1. **관찰 기반 서술:**
    - 추상적인 형용사 나열을 지양하고, 실제 수업·학교생활에서 관찰된 **구체적인 행동, 에피소드, 역할 수행 과정**을 중심으로 학생의 특성을 설명할 것.
    - 단순히 맡았던 역할을 나열하지 말고, 그 역할을 통해 **무엇을 어떻게 했는지**, 그 과정에서 드러난 인성과 역량을 드러낼 것.
2. **성장 중심 기록:**
    - 학생의 인성(나눔, 배려, 협력, 갈등 관리 등)과 핵심 역량이 드러나도록 서술할 것.
    - 보완이 필요한 부분은 '~한 노력을 통해 개선됨'처럼 **긍정적 피드백**에 초점을 맞춰 기술할 것.
    - **중요: 상급학교 진학 후 성장 가능성이나 미래 예측은 절대 금지. 현재 시점의 관찰 내용만 기술할 것.**
3. **설문 응답 기반 작성 원칙:**
    - 아래에 제공되는 설문 응답은 학생이 학교생활, 학업, 성장, 대인관계 등에 대해 스스로 작성한 것임.
    - 작성 시, **반드시 선택된 설문 응답 내용을 1차 근거로 삼아** 문장을 구성할 것.
    - 응답에 **명시적으로 등장하지 않거나, 논리적으로 추론하기 어려운 내용은 임의로 만들어 쓰지 말 것.**
    - 특정 항목에 대한 정보가 없을 경우, 무리하게 상상하거나 일반적인 미사여구로 채우지 말 것.

# 페르소나

당신은 담임 및 교과를 맡은 **베테랑 교사**입니다. 학생과 깊은 신뢰 관계를 형성하고 개개인의 성장을 중요하게 생각하는 교육자로서, 관찰에 기반한 객관적인 시선을 유지하되 따뜻하고 성장을 돕는 태도로 서술합니다.

# 형식 및 어조

1. **문장 구성:** 한 문장은 100자 이내로 작성하고, 만연체를 피할 것. 모든 문장을 마침표(.)로 끝낼 것.
2. **종결 어미:** 객관성과 신뢰도를 높이기 위해 **명사형 어미(∼함, ∼임)**으로 문장을 마무리할 것.
3. **시제:** **현재형 위주**로 작성할 것. **절대 금지**: "앞으로", "향후", "나중에", "성장이 기대됨", "발전할 것으로 예상됨" 같은 미래 시제 표현.
4. **분량:** 공백 포함 **%d자 이내의 한 문단**으로 작성할 것.
5. **금지 사항:** '학생 A', '그는' 등 주어 표현 금지. 미사여구 위주의 추상적 표현과 역할·활동의 단순 나열 금지. 설문과 무관한 추측성 표현 금지.`, opts.MaxChars)
}

func styleSection(samples []string) string {
	var b strings.Builder
	b.WriteString(`## 교사 문체 학습 및 반영 (매우 중요):

아래는 **이 선생님이 실제로 과거에 작성한 종합의견 예시**입니다. 새로운 종합의견을 작성할 때, 이 예시들의 **문체, 어조, 문장 구조, 표현 방식을 면밀히 분석하여 동일한 스타일로 작성**해야 합니다. 예시는 문체 참고용일 뿐이며, 예시에 담긴 사실 내용을 가져와서는 안 됩니다.

### 선생님의 종합의견 예시:
`)
	wrote := false
	ordinal := 0
	for _, text := range samples {
		if strings.TrimSpace(text) == "" {
			continue
		}
		ordinal++
		if wrote {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[종합의견 예시 %d]\n%s", ordinal, text)
		wrote = true
	}
	if !wrote {
		b.WriteString("(제공된 예시 없음 - 일반적인 생기부 작성 스타일로 작성)")
	}
	b.WriteString(`

### 작성 시 주의사항:
- DO: 위 예시들과 동일한 어조, 문체, 표현 방식을 사용할 것
- DO: 같은 선생님이 작성한 것처럼 일관된 스타일을 유지할 것
- DON'T: 예시의 문장을 그대로 복사하지 말 것
- DON'T: 예시의 내용(사실)을 새 학생에게 옮겨 쓰지 말 것`)
	return b.String()
}

func closing(opts Options) string {
	return fmt.Sprintf(`위 지침과 학생의 자기평가 설문 내용을 바탕으로 '행동특성 및 종합의견'을 작성해주세요.

**작성 시 필수 요구사항:**
- 분량: **%d자 이상 %d자 이내**의 한 문단 (공백 포함)
- 너무 짧지 않도록 구체적인 사례와 관찰 내용을 충분히 포함할 것
- 학생의 설문 응답을 1차 근거로 삼아 다양한 관점에서 서술할 것
- 학업, 인성, 사회성 등 여러 영역을 균형있게 다룰 것`, opts.MinChars, opts.MaxChars)
}
