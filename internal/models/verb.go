package models

// Verb is one entry of the built-in verb table. Verbs are immutable
// reference data: loaded once at startup and never mutated.
type Verb struct {
	ID          int    `json:"id"`
	Infinitive  string `json:"infinitive"`
	Past        string `json:"past"`
	Definition  string `json:"definition"`
	Example     string `json:"example"`
	PastExample string `json:"past_example"`
	Type        string `json:"type"`
	Category    string `json:"category"`
}
