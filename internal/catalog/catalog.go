// Package catalog описывает фиксированный набор навыков курса.
// Таблица неизменяема, собирается один раз на старте процесса и
// передаётся в сервис матрицы навыков явно — никакого глобального
// состояния.
package catalog

type Category string

const (
	Orthography Category = "orthography"
	Punctuation Category = "punctuation"
)

// Definition — статические поля одного навыка: ключ, подпись, связанные
// уроки и упражнения, порядковый номер в программе курса.
type Definition struct {
	SkillID          string   `json:"skillId"`
	Name             string   `json:"name"`
	Category         Category `json:"category"`
	Description      string   `json:"description"`
	RelatedLessons   []string `json:"relatedLessons"`
	RelatedExercises []string `json:"relatedExercises"`
	Order            int      `json:"order"`
}

// Level — метаданные уровня владения навыком для клиента.
type Level struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

// Levels индексируется уровнем 0–5.
var Levels = [6]Level{
	{Name: "Не изучен", Color: "#9e9e9e", Emoji: "⚪"},
	{Name: "Новичок", Color: "#f44336", Emoji: "🔴"},
	{Name: "Начинающий", Color: "#ff9800", Emoji: "🟠"},
	{Name: "Практикующий", Color: "#ffeb3b", Emoji: "🟡"},
	{Name: "Опытный", Color: "#8bc34a", Emoji: "🟢"},
	{Name: "Мастер", Color: "#4caf50", Emoji: "🟢"},
}

// Catalog — упорядоченная таблица определений с доступом по ключу.
type Catalog struct {
	defs []Definition
	byID map[string]Definition
}

func New(defs []Definition) *Catalog {
	c := &Catalog{
		defs: make([]Definition, len(defs)),
		byID: make(map[string]Definition, len(defs)),
	}
	copy(c.defs, defs)
	for _, d := range c.defs {
		c.byID[d.SkillID] = d
	}
	return c
}

// Default возвращает каталог из 31 навыка курса (15 орфография,
// 16 пунктуация), порядок соответствует порядку уроков.
func Default() *Catalog {
	return New(definitions)
}

func (c *Catalog) Len() int {
	return len(c.defs)
}

func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

func (c *Catalog) Get(skillID string) (Definition, bool) {
	d, ok := c.byID[skillID]
	return d, ok
}

var definitions = []Definition{
	// Орфография: гласные
	{
		SkillID:          "vowels-checked",
		Name:             "Проверяемые безударные гласные",
		Category:         Orthography,
		Description:      "Умение проверять безударные гласные в корне слова",
		RelatedLessons:   []string{"lesson-01-vowels-checked"},
		RelatedExercises: []string{"exercise-01-vowels-roots"},
		Order:            1,
	},
	{
		SkillID:          "vowels-unchecked",
		Name:             "Непроверяемые гласные (словарные слова)",
		Category:         Orthography,
		Description:      "Знание словарных слов",
		RelatedLessons:   []string{"lesson-02-vowels-unchecked"},
		RelatedExercises: []string{"exercise-02-vowels-dictionary"},
		Order:            2,
	},
	{
		SkillID:          "vowels-alternating",
		Name:             "Чередующиеся гласные в корне",
		Category:         Orthography,
		Description:      "Правописание корней с чередованием",
		RelatedLessons:   []string{"lesson-03-alternating-vowels"},
		RelatedExercises: []string{"exercise-01-vowels-roots"},
		Order:            3,
	},

	// Орфография: согласные
	{
		SkillID:          "consonants-checked",
		Name:             "Проверяемые согласные",
		Category:         Orthography,
		Description:      "Проверка согласных в слабой позиции",
		RelatedLessons:   []string{"lesson-04-consonants-checked"},
		RelatedExercises: []string{"exercise-02-consonants"},
		Order:            4,
	},
	{
		SkillID:          "consonants-unchecked",
		Name:             "Непроизносимые согласные",
		Category:         Orthography,
		Description:      "Правописание непроизносимых согласных",
		RelatedLessons:   []string{"lesson-05-consonants-unchecked"},
		RelatedExercises: []string{"exercise-02-consonants"},
		Order:            5,
	},
	{
		SkillID:          "vowels-after-sibilants",
		Name:             "Гласные после шипящих и Ц",
		Category:         Orthography,
		Description:      "О-Е после шипящих, И-Ы после Ц",
		RelatedLessons:   []string{"lesson-06-vowels-after-sibilants"},
		RelatedExercises: []string{"exercise-02-consonants"},
		Order:            6,
	},

	// Орфография: Ь и Ъ
	{
		SkillID:          "soft-sign",
		Name:             "Употребление Ь и Ъ",
		Category:         Orthography,
		Description:      "Правила употребления мягкого и твёрдого знаков",
		RelatedLessons:   []string{"lesson-07-soft-sign"},
		RelatedExercises: []string{"exercise-03-signs"},
		Order:            7,
	},

	// Орфография: приставки
	{
		SkillID:          "prefixes",
		Name:             "Правописание приставок",
		Category:         Orthography,
		Description:      "Приставки на З-С, ПРЕ-ПРИ",
		RelatedLessons:   []string{"lesson-08-prefixes"},
		RelatedExercises: []string{"exercise-04-prefixes-suffixes"},
		Order:            8,
	},

	// Орфография: суффиксы
	{
		SkillID:          "suffixes-nouns",
		Name:             "Суффиксы существительных",
		Category:         Orthography,
		Description:      "ЕК-ИК, ЧИК-ЩИК и другие",
		RelatedLessons:   []string{"lesson-09-suffixes-nouns"},
		RelatedExercises: []string{"exercise-04-prefixes-suffixes"},
		Order:            9,
	},
	{
		SkillID:          "suffixes-adjectives",
		Name:             "Суффиксы прилагательных",
		Category:         Orthography,
		Description:      "Н и НН в прилагательных",
		RelatedLessons:   []string{"lesson-10-suffixes-adjectives"},
		RelatedExercises: []string{"exercise-04-prefixes-suffixes"},
		Order:            10,
	},
	{
		SkillID:          "verb-endings",
		Name:             "Личные окончания глаголов",
		Category:         Orthography,
		Description:      "Определение спряжения глаголов",
		RelatedLessons:   []string{"lesson-11-verb-endings"},
		RelatedExercises: []string{"exercise-05-verbs-participles"},
		Order:            11,
	},
	{
		SkillID:          "participles",
		Name:             "Правописание причастий",
		Category:         Orthography,
		Description:      "Н и НН в причастиях, суффиксы",
		RelatedLessons:   []string{"lesson-12-participles"},
		RelatedExercises: []string{"exercise-05-verbs-participles"},
		Order:            12,
	},

	// Орфография: наречия и частицы
	{
		SkillID:          "adverbs",
		Name:             "Правописание наречий",
		Category:         Orthography,
		Description:      "Слитное, дефисное, раздельное написание",
		RelatedLessons:   []string{"lesson-13-adverbs"},
		RelatedExercises: []string{"exercise-06-adverbs-particles"},
		Order:            13,
	},
	{
		SkillID:          "particles-not-ne",
		Name:             "Частицы НЕ и НИ",
		Category:         Orthography,
		Description:      "Различение НЕ и НИ, слитное/раздельное",
		RelatedLessons:   []string{"lesson-14-particles-not-ne"},
		RelatedExercises: []string{"exercise-06-adverbs-particles"},
		Order:            14,
	},

	// Орфография: слитно/дефисно/раздельно
	{
		SkillID:          "combined-words",
		Name:             "Слитное, дефисное, раздельное написание",
		Category:         Orthography,
		Description:      "Общие правила написания слов",
		RelatedLessons:   []string{"lesson-15-combined-words"},
		RelatedExercises: []string{"exercise-07-combined-writing"},
		Order:            15,
	},

	// Пунктуация: основы
	{
		SkillID:          "comma-placement",
		Name:             "Правила расположения запятых",
		Category:         Punctuation,
		Description:      "Систематизация всех правил запятых",
		RelatedLessons:   []string{"lesson-16-comma-rules-overview"},
		RelatedExercises: []string{"exercise-09-comma-placement"},
		Order:            16,
	},
	{
		SkillID:          "sentence-end",
		Name:             "Знаки в конце предложения",
		Category:         Punctuation,
		Description:      "Точка, вопросительный, восклицательный знаки",
		RelatedLessons:   []string{"lesson-17-sentence-end"},
		RelatedExercises: []string{"exercise-10-simple-sentence"},
		Order:            17,
	},
	{
		SkillID:          "homogeneous-members",
		Name:             "Однородные члены предложения",
		Category:         Punctuation,
		Description:      "Запятые при однородных членах",
		RelatedLessons:   []string{"lesson-18-homogeneous-members"},
		RelatedExercises: []string{"exercise-11-homogeneous"},
		Order:            18,
	},
	{
		SkillID:          "generalization-words",
		Name:             "Обобщающие слова",
		Category:         Punctuation,
		Description:      "Двоеточие и тире при обобщающих словах",
		RelatedLessons:   []string{"lesson-19-generalization-words"},
		RelatedExercises: []string{"exercise-11-homogeneous"},
		Order:            19,
	},

	// Пунктуация: обособления
	{
		SkillID:          "separate-definitions",
		Name:             "Обособленные определения",
		Category:         Punctuation,
		Description:      "Причастные обороты и определения",
		RelatedLessons:   []string{"lesson-20-separate-definitions"},
		RelatedExercises: []string{"exercise-12-separate-members"},
		Order:            20,
	},
	{
		SkillID:          "separate-applications",
		Name:             "Обособленные приложения",
		Category:         Punctuation,
		Description:      "Выделение приложений",
		RelatedLessons:   []string{"lesson-21-separate-applications"},
		RelatedExercises: []string{"exercise-12-separate-members"},
		Order:            21,
	},
	{
		SkillID:          "separate-circumstances",
		Name:             "Обособленные обстоятельства",
		Category:         Punctuation,
		Description:      "Деепричастные обороты",
		RelatedLessons:   []string{"lesson-22-separate-circumstances"},
		RelatedExercises: []string{"exercise-12-separate-members"},
		Order:            22,
	},
	{
		SkillID:          "separate-additions",
		Name:             "Уточняющие члены предложения",
		Category:         Punctuation,
		Description:      "Уточняющие и поясняющие члены",
		RelatedLessons:   []string{"lesson-23-separate-additions"},
		RelatedExercises: []string{"exercise-12-separate-members"},
		Order:            23,
	},

	// Пунктуация: обращения и вводные
	{
		SkillID:          "appeals",
		Name:             "Обращения и вводные слова",
		Category:         Punctuation,
		Description:      "Выделение обращений и вводных слов",
		RelatedLessons:   []string{"lesson-24-appeals"},
		RelatedExercises: []string{"exercise-13-insertions"},
		Order:            24,
	},
	{
		SkillID:          "introductory-constructions",
		Name:             "Вводные конструкции",
		Category:         Punctuation,
		Description:      "Вводные предложения и вставные конструкции",
		RelatedLessons:   []string{"lesson-25-introductory-constructions"},
		RelatedExercises: []string{"exercise-13-insertions"},
		Order:            25,
	},

	// Пунктуация: прямая речь
	{
		SkillID:          "direct-speech",
		Name:             "Прямая речь и диалог",
		Category:         Punctuation,
		Description:      "Оформление чужой речи",
		RelatedLessons:   []string{"lesson-26-direct-speech"},
		RelatedExercises: []string{"exercise-15-direct-speech"},
		Order:            26,
	},

	// Пунктуация: сложное предложение
	{
		SkillID:          "complex-sentence",
		Name:             "Сложносочинённое предложение",
		Category:         Punctuation,
		Description:      "Знаки в ССП",
		RelatedLessons:   []string{"lesson-27-complex-sentence"},
		RelatedExercises: []string{"exercise-14-complex-sentence"},
		Order:            27,
	},
	{
		SkillID:          "subordinate-clauses",
		Name:             "Сложноподчинённое предложение",
		Category:         Punctuation,
		Description:      "Знаки в СПП",
		RelatedLessons:   []string{"lesson-28-subordinate-clauses"},
		RelatedExercises: []string{"exercise-14-complex-sentence"},
		Order:            28,
	},
	{
		SkillID:          "non-union-sentence",
		Name:             "Бессоюзное сложное предложение",
		Category:         Punctuation,
		Description:      "Двоеточие и тире в БСП",
		RelatedLessons:   []string{"lesson-29-non-union-sentence"},
		RelatedExercises: []string{"exercise-14-complex-sentence"},
		Order:            29,
	},
	{
		SkillID:          "complex-with-types",
		Name:             "Сложные предложения с разными видами связи",
		Category:         Punctuation,
		Description:      "Комбинированные сложные предложения",
		RelatedLessons:   []string{"lesson-30-complex-with-types"},
		RelatedExercises: []string{"exercise-14-complex-sentence"},
		Order:            30,
	},
	{
		SkillID:          "quotes-parentheses",
		Name:             "Кавычки, скобки, тире",
		Category:         Punctuation,
		Description:      "Особые случаи пунктуации",
		RelatedLessons:   []string{"lesson-31-quotes-parentheses"},
		RelatedExercises: []string{"exercise-14-complex-sentence"},
		Order:            31,
	},
}
