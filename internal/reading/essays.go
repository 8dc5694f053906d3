// Package reading implements the essay reading and recitation mode:
// sentence navigation, read-aloud sequencing and the recite loop that
// hides verbs and paces through the text.
package reading

// Essay is one reading text. Sentences carry inline markup: <v>…</v>
// wraps verbs, <t>…</t> wraps time phrases.
type Essay struct {
	ID           string
	Title        string
	ChineseTitle string
	Sentences    []string
}

var essayTable = []Essay{
	{
		ID:           "essay1",
		Title:        "My Last Weekend",
		ChineseTitle: "我的上个周末",
		Sentences: []string{
			"I <v>did</v> many things <t>last weekend</t>.",
			"I <v>went</v> to the park with my parents.",
			"My friend and I <v>played</v> football.",
			"I <v>did</v> my homework and <v>watched</v> TV.",
			"I <v>was</v> very busy but happy.",
		},
	},
	{
		ID:           "essay2",
		Title:        "A Letter About a Trip",
		ChineseTitle: "一封旅行的信",
		Sentences: []string{
			"Dear Carolin,",
			"How <v>are</v> you?",
			"I <v>was</v> excited <t>last summer</t>.",
			"I <v>took</v> a plane to Sanya <t>in July</t>.",
			"I <v>went</v> there with my dad.",
			"I <v>swam</v> in the sea.",
			"I <v>played</v> on the beach.",
			"I <v>ate</v> seafood.",
			"I <v>had</v> a lot of fun.",
			"What about your summer?",
			"Love,",
			"Tina",
		},
	},
	{
		ID:           "essay3",
		Title:        "My School Day",
		ChineseTitle: "我的学校生活",
		Sentences: []string{
			"I <v>get up</v> at seven o'clock <t>every morning</t>.",
			"I <v>have</v> breakfast with my family.",
			"I <v>go</v> to school by bus.",
			"I <v>study</v> English, Math and Science.",
			"I <v>play</v> with my friends <t>at lunch time</t>.",
			"I <v>come</v> home at four o'clock.",
			"I <v>do</v> my homework <t>in the evening</t>.",
		},
	},
}

// Essays returns all reading texts in presentation order.
func Essays() []Essay {
	out := make([]Essay, len(essayTable))
	copy(out, essayTable)
	return out
}

// EssayByID returns the essay with the given ID.
func EssayByID(id string) (Essay, bool) {
	for _, e := range essayTable {
		if e.ID == id {
			return e, true
		}
	}
	return Essay{}, false
}
