package models

type LessonPath struct {
	ID          int      `bson:"_id" json:"id"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Color       string   `bson:"color" json:"color"`
	Icon        string   `bson:"icon" json:"icon"`
	Order       int      `bson:"order" json:"order"`
	Lessons     []Lesson `bson:"-" json:"lessons,omitempty"`
}

type Lesson struct {
	ID          int           `bson:"_id" json:"id"`
	PathID      int           `bson:"path_id" json:"path_id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Type        string        `bson:"type" json:"type"`
	Order       int           `bson:"order" json:"order"`
	Content     LessonContent `bson:"content" json:"content"`
}

type LessonContent struct {
	Sections []Section      `bson:"sections" json:"sections"`
	Quiz     []QuizQuestion `bson:"quiz,omitempty" json:"quiz,omitempty"`
}

// Section types
const (
	SectionIntro       = "intro"
	SectionExplanation = "explanation"
	SectionInteractive = "interactive"
)

// Activity kinds carried by interactive sections
const (
	ActivityMatching = "matching"
	ActivityDragDrop = "drag-drop"
	ActivityScenario = "scenario"
)

// Section is a tagged variant: Type selects intro/explanation/interactive,
// and for interactive sections Activity selects exactly one of the payload
// fields below.
type Section struct {
	Type         string             `bson:"type" json:"type"`
	Title        string             `bson:"title" json:"title"`
	Content      string             `bson:"content,omitempty" json:"content,omitempty"`
	Activity     string             `bson:"activity,omitempty" json:"activity,omitempty"`
	Instructions string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Pairs        []MatchingPair     `bson:"pairs,omitempty" json:"pairs,omitempty"`
	Categories   []DragDropCategory `bson:"categories,omitempty" json:"categories,omitempty"`
	Items        []DragDropItem     `bson:"items,omitempty" json:"items,omitempty"`
	Scenario     *BudgetScenario    `bson:"scenario,omitempty" json:"scenario,omitempty"`
}

type MatchingPair struct {
	Left  string `bson:"left" json:"left"`
	Right string `bson:"right" json:"right"`
}

type DragDropCategory struct {
	Name string `bson:"name" json:"name"`
}

// DragDropItem carries the item text together with its canonical category.
type DragDropItem struct {
	Text     string `bson:"text" json:"text"`
	Category string `bson:"category" json:"category"`
}

type BudgetScenario struct {
	MonthlyIncome int           `bson:"monthly_income" json:"monthlyIncome"`
	Breakdown     []BudgetSlice `bson:"breakdown" json:"breakdown"`
}

type BudgetSlice struct {
	Name       string `bson:"name" json:"name"`
	Percentage int    `bson:"percentage" json:"percentage"`
	Amount     int    `bson:"amount" json:"amount"`
	Color      string `bson:"color" json:"color"`
}

type QuizQuestion struct {
	Question    string   `bson:"question" json:"question"`
	Options     []string `bson:"options" json:"options"`
	Correct     int      `bson:"correct" json:"correct"`
	Explanation string   `bson:"explanation" json:"explanation"`
}
