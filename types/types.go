package types

// Voice is one synthesizable voice identity from the static pool.
// The pool is loaded from config at startup and never mutated.
type Voice struct {
	Name        string `yaml:"name" json:"name"`
	Gender      string `yaml:"gender" json:"gender"`
	Age         string `yaml:"age,omitempty" json:"age,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	VoiceID     string `yaml:"voice_id" json:"voice_id"`
}

// Character is one speaker in an idea. VoiceID is assigned by the
// voice solver, never generated by the model.
type Character struct {
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	Gender      string `json:"gender"`
	Age         string `json:"age,omitempty"`
	DefaultTone string `json:"default_tone,omitempty"`
	VoiceID     string `json:"voice_id,omitempty"`
}

// Idea is one content concept. Conversations carry Description,
// podcast episodes carry Concept.
type Idea struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Concept     string      `json:"concept,omitempty"`
	Characters  []Character `json:"characters"`
}

// IdeaFile is the shape of ideas.json.
type IdeaFile struct {
	Metadata map[string]string `json:"metadata"`
	Ideas    []Idea            `json:"ideas"`
}

// PodcastIdeaFile is the shape of podcast_ideas.json.
type PodcastIdeaFile struct {
	Metadata map[string]string `json:"metadata"`
	Ideas    []Idea            `json:"podcast_ideas"`
}

// DialogueLine is one line formatted for the ElevenLabs
// text-to-dialogue API. Text starts with a bracketed emotion tag.
type DialogueLine struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

// Script is the generated dialogue for one idea, persisted as
// scripts/<slug>.json. Error carries the raw model output when the
// generator failed to produce valid dialogue; downstream stages skip
// scripts with a non-empty Error.
type Script struct {
	Metadata     map[string]string `json:"metadata"`
	Idea         Idea              `json:"idea"`
	DialogueList []DialogueLine    `json:"dialogue_list"`
	Error        string            `json:"error,omitempty"`
}
