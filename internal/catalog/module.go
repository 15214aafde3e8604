package catalog

// Default level tags offered by the level selector.
const (
	LevelSMP = "SMP"
	LevelSMA = "SMA"
	LevelSMK = "SMK"

	// LevelAll is the filter sentinel that matches every level.
	LevelAll = "all"
)

// Module is one unit of learning content: a markdown lesson plus quiz,
// flashcards and an optional video reference.
type Module struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Level       string      `json:"level" yaml:"level"`
	Description string      `json:"description" yaml:"description"`
	Content     string      `json:"content" yaml:"content"`
	VideoURL    string      `json:"videoUrl,omitempty" yaml:"video_url,omitempty"`
	Flashcards  []Flashcard `json:"flashcards" yaml:"flashcards"`
	Quiz        []QuizItem  `json:"quiz" yaml:"quiz"`
}

// Flashcard is a front/back recall pair.
type Flashcard struct {
	Front string `json:"front" yaml:"front"`
	Back  string `json:"back" yaml:"back"`
}

// QuizItem is a single multiple-choice question.
type QuizItem struct {
	Question     string   `json:"question" yaml:"question"`
	Choices      []string `json:"choices" yaml:"choices"`
	CorrectIndex int      `json:"correctIndex" yaml:"correct_index"`
	Explanation  string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// HasVideo reports whether the module references a video.
func (m Module) HasVideo() bool {
	return m.VideoURL != ""
}

// Clone returns a deep copy so callers can't alias the catalog's slices.
func (m Module) Clone() Module {
	out := m
	if m.Flashcards != nil {
		out.Flashcards = append([]Flashcard(nil), m.Flashcards...)
	}
	if m.Quiz != nil {
		out.Quiz = make([]QuizItem, len(m.Quiz))
		for i, q := range m.Quiz {
			q.Choices = append([]string(nil), q.Choices...)
			out.Quiz[i] = q
		}
	}
	return out
}
