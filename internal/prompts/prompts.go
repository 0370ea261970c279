// Package prompts builds the instructions sent to the generation backend.
package prompts

import (
	"fmt"
	"strings"

	"github.com/minbar-sermons-api/internal/schema"
)

// Strategy selects how structural compliance is requested from the model
type Strategy string

const (
	// StrategyFreeText embeds formatting rules and an example skeleton in
	// the prompt; the response is fence-stripped and validated locally.
	StrategyFreeText Strategy = "freetext"
	// StrategySchema additionally declares the schema natively to the backend.
	StrategySchema Strategy = "schema"
)

// ParseStrategy maps a configuration value to a strategy
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(value))) {
	case StrategyFreeText, "":
		return StrategyFreeText, nil
	case StrategySchema:
		return StrategySchema, nil
	default:
		return "", fmt.Errorf("unknown prompt strategy %q", value)
	}
}

// SurahNamer resolves a surah number to its Arabic name
type SurahNamer interface {
	SurahName(number int) string
}

// Prompt is a complete request for the generation backend
type Prompt struct {
	System   string
	User     string
	Schema   *schema.Node
	Strategy Strategy
}

// NativeSchema returns the schema to declare to the backend, if any
func (p Prompt) NativeSchema() *schema.Node {
	if p.Strategy == StrategySchema {
		return p.Schema
	}
	return nil
}

const persona = `أنت خبير في الشريعة الإسلامية وخطيب جمعة، متخصص في توليد محتوى عالي الجودة وموثوق باللغة العربية الفصحى. مهمتك هي توليد خطبة جمعة متكاملة بناء على الطلب.`

// Rules are the formatting rules every structured response must follow
var Rules = []string{
	"يجب أن يكون الرد كائن JSON واحدًا فقط، دون أي نص أو شرح قبله أو بعده.",
	"يجب وضع جميع أسماء الحقول بين علامتي تنصيص مزدوجتين (\").",
	"يجب وضع جميع القيم النصية بين علامتي تنصيص مزدوجتين، مع تهريب أي علامة تنصيص داخل النص هكذا: \\\".",
	"لا تضع فاصلة زائدة بعد آخر عنصر في أي قائمة أو كائن.",
	"يجب أن يكون الرد قابلًا للتحليل مباشرة كـ JSON دون أي تعديل.",
}

// Builder composes prompts for a surah and optional section
type Builder struct {
	names    SurahNamer
	strategy Strategy
}

// NewBuilder creates a prompt builder
func NewBuilder(names SurahNamer, strategy Strategy) *Builder {
	if strategy == "" {
		strategy = StrategyFreeText
	}
	return &Builder{names: names, strategy: strategy}
}

// Strategy returns the configured strategy
func (b *Builder) Strategy() Strategy {
	return b.strategy
}

// Contract returns the system instruction: persona plus formatting rules
func (b *Builder) Contract() string {
	var sb strings.Builder
	sb.WriteString(persona)
	sb.WriteString("\n\nقواعد صارمة لتنسيق الرد:\n")
	for i, rule := range Rules {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, rule)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Build returns the generation prompt. An unknown surah yields an empty
// name rather than an error.
func (b *Builder) Build(surahNumber int, topic string) Prompt {
	name := b.names.SurahName(surahNumber)
	doc := schema.Sermon(name)
	topic = strings.TrimSpace(topic)

	var sb strings.Builder
	sb.WriteString("مهمتك: قم بتوليد خطبة جمعة متكاملة، عميقة، ومفصلة (حوالي 2500-3000 كلمة) معتمدة على مصادر إسلامية موثوقة ومتفق عليها.\n")
	fmt.Fprintf(&sb, "الموضوع: سورة \"%s\".\n", name)
	if topic != "" {
		fmt.Fprintf(&sb, "التركيز الخاص: \"%s\".\n", topic)
	} else {
		sb.WriteString("التركيز العام: أهم مقاصد السورة.\n")
	}
	sb.WriteString("\nيجب أن تكون الخطبة ذات جودة عالية جدًا، وتتضمن تفسيرًا عميقًا، تأملات عملية وثرية، ورسائل إيمانية واضحة، مع حديث صحيح ودعاء مؤثر في الخطبة الثانية.")

	if b.strategy == StrategyFreeText {
		sb.WriteString("\n\nأعد الرد بهذا الشكل تمامًا، مع استبدال الأوصاف بالمحتوى الفعلي:\n")
		sb.WriteString(doc.Skeleton())
	}

	return Prompt{
		System:   b.Contract(),
		User:     sb.String(),
		Schema:   doc,
		Strategy: b.strategy,
	}
}

// BuildPreview returns a plain-text prompt asking only for the verses of
// the selected section.
func (b *Builder) BuildPreview(surahNumber int, topic string) Prompt {
	name := b.names.SurahName(surahNumber)
	user := fmt.Sprintf(`مهمتك هي استخراج الآيات القرآنية الكاملة فقط بالتشكيل. لا تقم بإضافة أي نص أو تفسير أو مقدمات أو خاتمة. فقط نص الآيات.
السورة: %s
المقطع المطلوب: %s
الرد المطلوب: قائمة بجميع الآيات في هذا المقطع، مع أرقامها بين قوسين، على سبيل المثال: "(١) بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ (٢) الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ".`, name, strings.TrimSpace(topic))

	return Prompt{User: user, Strategy: b.strategy}
}
