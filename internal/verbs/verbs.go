// Package verbs holds the built-in verb reference table. The data is loaded
// once at startup and never mutated; callers always receive copies.
package verbs

import (
	"math/rand"

	"verblearn/internal/models"
)

// Verb type values.
const (
	TypeRegular   = "regular"
	TypeIrregular = "irregular"
)

// Verb category values.
const (
	CategoryMovement = "movement"
	CategoryAction   = "action"
	CategoryState    = "state"
)

var verbTable = []models.Verb{
	{ID: 1, Infinitive: "go", Past: "went", Definition: "去，前往", Example: "I go to school every day.", PastExample: "Yesterday, I went to the park.", Type: TypeIrregular, Category: CategoryMovement},
	{ID: 2, Infinitive: "take", Past: "took", Definition: "拿，带走", Example: "I take my bag to school.", PastExample: "She took her umbrella yesterday.", Type: TypeIrregular, Category: CategoryAction},
	{ID: 3, Infinitive: "see", Past: "saw", Definition: "看见，看到", Example: "I see a bird in the tree.", PastExample: "We saw a movie last night.", Type: TypeIrregular, Category: CategoryAction},
	{ID: 4, Infinitive: "is", Past: "was", Definition: "是，在", Example: "The cat is sleeping.", PastExample: "The cat was sleeping yesterday.", Type: TypeIrregular, Category: CategoryState},
	{ID: 5, Infinitive: "look", Past: "looked", Definition: "看，瞧", Example: "I look at the board.", PastExample: "She looked at the stars last night.", Type: TypeRegular, Category: CategoryAction},
	{ID: 6, Infinitive: "visit", Past: "visited", Definition: "访问，参观", Example: "We visit our grandparents.", PastExample: "They visited the museum yesterday.", Type: TypeRegular, Category: CategoryAction},
	{ID: 7, Infinitive: "play", Past: "played", Definition: "玩，玩耍", Example: "Children play in the park.", PastExample: "We played soccer yesterday.", Type: TypeRegular, Category: CategoryAction},
	{ID: 8, Infinitive: "dance", Past: "danced", Definition: "跳舞", Example: "She loves to dance.", PastExample: "They danced at the party.", Type: TypeRegular, Category: CategoryAction},
	{ID: 9, Infinitive: "do", Past: "did", Definition: "做，干", Example: "I do my homework.", PastExample: "He did his chores yesterday.", Type: TypeIrregular, Category: CategoryAction},
	{ID: 10, Infinitive: "build", Past: "built", Definition: "建造，建筑", Example: "We build sandcastles.", PastExample: "They built a treehouse last summer.", Type: TypeIrregular, Category: CategoryAction},
	{ID: 11, Infinitive: "tell", Past: "told", Definition: "告诉，讲述", Example: "I tell stories to my friends.", PastExample: "The actors told lots of jokes.", Type: TypeIrregular, Category: CategoryAction},
	{ID: 12, Infinitive: "wear", Past: "wore", Definition: "穿，戴", Example: "I wear a uniform to school.", PastExample: "The men wore women's clothes.", Type: TypeIrregular, Category: CategoryAction},
	{ID: 13, Infinitive: "eat", Past: "ate", Definition: "吃", Example: "I eat breakfast at 8 AM.", PastExample: "We all ate hamburgers and chips.", Type: TypeIrregular, Category: CategoryAction},
	{ID: 14, Infinitive: "have", Past: "had", Definition: "有，拥有；举办", Example: "I have a new book.", PastExample: "We had a party yesterday.", Type: TypeIrregular, Category: CategoryAction},
	{ID: 15, Infinitive: "buy", Past: "bought", Definition: "买，购买", Example: "I buy groceries every week.", PastExample: "Mum bought new chopsticks for you.", Type: TypeIrregular, Category: CategoryAction},
	{ID: 16, Infinitive: "read", Past: "read", Definition: "读，阅读", Example: "I read books every day.", PastExample: "Dad read a book about Chinese history.", Type: TypeIrregular, Category: CategoryAction},
	{ID: 17, Infinitive: "laugh", Past: "laughed", Definition: "笑，大笑", Example: "The joke makes me laugh.", PastExample: "We laughed a lot.", Type: TypeRegular, Category: CategoryAction},
	{ID: 18, Infinitive: "like", Past: "liked", Definition: "喜欢", Example: "I like ice cream.", PastExample: "She liked them.", Type: TypeRegular, Category: CategoryAction},
	{ID: 19, Infinitive: "borrow", Past: "borrowed", Definition: "借，借用", Example: "I borrow books from the library.", PastExample: "We borrowed a bike for you.", Type: TypeRegular, Category: CategoryAction},
}

// All returns a copy of the full verb table.
func All() []models.Verb {
	out := make([]models.Verb, len(verbTable))
	copy(out, verbTable)
	return out
}

// Count returns the number of verbs in the table.
func Count() int {
	return len(verbTable)
}

// ByID returns the verb with the given ID, or false if it does not exist.
func ByID(id int) (models.Verb, bool) {
	for _, v := range verbTable {
		if v.ID == id {
			return v, true
		}
	}
	return models.Verb{}, false
}

// ByType returns all verbs of the given type (regular or irregular).
func ByType(verbType string) []models.Verb {
	var out []models.Verb
	for _, v := range verbTable {
		if v.Type == verbType {
			out = append(out, v)
		}
	}
	return out
}

// ByCategory returns all verbs in the given category.
func ByCategory(category string) []models.Verb {
	var out []models.Verb
	for _, v := range verbTable {
		if v.Category == category {
			out = append(out, v)
		}
	}
	return out
}

// Random returns count verbs sampled uniformly without replacement. If count
// exceeds the table size the whole shuffled table is returned.
func Random(count int) []models.Verb {
	shuffled := All()
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}
