package db

import (
	"context"
	"log"

	"learning-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Seed loads the starter catalog (paths, lessons, badges) into empty
// collections. Collections that already hold documents are left alone, so
// seeding is safe to run on every boot.
func Seed(ctx context.Context, database *mongo.Database) error {
	if err := seedCollection(ctx, database.Collection("lesson_paths"), asAny(seedPaths())); err != nil {
		return err
	}
	if err := seedCollection(ctx, database.Collection("lessons"), asAny(seedLessons())); err != nil {
		return err
	}
	return seedCollection(ctx, database.Collection("badges"), asAny(seedBadges()))
}

func seedCollection(ctx context.Context, col *mongo.Collection, docs []any) error {
	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if _, err := col.InsertMany(ctx, docs); err != nil {
		return err
	}
	log.Printf("Seeded %d documents into %s", len(docs), col.Name())
	return nil
}

func asAny[T any](items []T) []any {
	docs := make([]any, len(items))
	for i, item := range items {
		docs[i] = item
	}
	return docs
}

func seedPaths() []models.LessonPath {
	return []models.LessonPath{
		{ID: 1, Title: "Budgeting Basics", Description: "Learn the fundamentals of creating and managing a budget", Color: "#3B82F6", Icon: "Calculator", Order: 1},
		{ID: 2, Title: "Saving & Emergency Funds", Description: "Build financial security through smart saving strategies", Color: "#10B981", Icon: "PiggyBank", Order: 2},
		{ID: 3, Title: "Credit & Debt", Description: "Understand credit scores and manage debt effectively", Color: "#F59E0B", Icon: "CreditCard", Order: 3},
	}
}

func seedLessons() []models.Lesson {
	return []models.Lesson{
		{
			ID: 1, PathID: 1, Order: 1, Type: "standard",
			Title:       "What is a Budget?",
			Description: "Understand the basics of budgeting and why it matters",
			Content: models.LessonContent{
				Sections: []models.Section{
					{
						Type:    models.SectionIntro,
						Title:   "Welcome to Budgeting!",
						Content: "A budget is your money's game plan. It helps you track income and expenses to reach your financial goals.",
					},
					{
						Type:     models.SectionInteractive,
						Title:    "Budget Definition Match",
						Activity: models.ActivityMatching,
						Pairs: []models.MatchingPair{
							{Left: "Income", Right: "Money you earn"},
							{Left: "Expenses", Right: "Money you spend"},
							{Left: "Budget", Right: "A plan for your money"},
							{Left: "Savings", Right: "Money set aside for later"},
						},
					},
					{
						Type:    models.SectionExplanation,
						Title:   "Why Budget?",
						Content: "Budgeting helps you avoid overspending, save for goals, and reduce financial stress.",
					},
				},
				Quiz: []models.QuizQuestion{
					{
						Question: "What is the main purpose of a budget?",
						Options: []string{
							"To restrict your spending completely",
							"To plan how you'll use your money",
							"To make you feel guilty about purchases",
							"To impress others with your organization",
						},
						Correct:     1,
						Explanation: "A budget is a plan that helps you allocate your money toward your priorities and goals.",
					},
				},
			},
		},
		{
			ID: 2, PathID: 1, Order: 2, Type: "activity",
			Title:       "Income vs Expenses",
			Description: "Learn to identify and categorize your income and expenses",
			Content: models.LessonContent{
				Sections: []models.Section{
					{
						Type:    models.SectionIntro,
						Title:   "Income and Expenses",
						Content: "To create a budget, you need to know what money comes in (income) and what goes out (expenses).",
					},
					{
						Type:         models.SectionInteractive,
						Title:        "Drag & Drop Challenge",
						Activity:     models.ActivityDragDrop,
						Instructions: "Drag each item to the correct category:",
						Categories: []models.DragDropCategory{
							{Name: "Income"},
							{Name: "Fixed Expenses"},
							{Name: "Variable Expenses"},
						},
						Items: []models.DragDropItem{
							{Text: "Salary", Category: "Income"},
							{Text: "Rent", Category: "Fixed Expenses"},
							{Text: "Groceries", Category: "Variable Expenses"},
							{Text: "Car Payment", Category: "Fixed Expenses"},
							{Text: "Entertainment", Category: "Variable Expenses"},
							{Text: "Side Job", Category: "Income"},
						},
					},
				},
				Quiz: []models.QuizQuestion{
					{
						Question: "Which of these is a fixed expense?",
						Options: []string{
							"Dining out",
							"Rent payment",
							"Grocery shopping",
							"Gas for your car",
						},
						Correct:     1,
						Explanation: "Fixed expenses stay the same each month, like rent or loan payments.",
					},
				},
			},
		},
		{
			ID: 3, PathID: 1, Order: 3, Type: "standard",
			Title:       "The 50/30/20 Rule",
			Description: "Learn a simple budgeting framework that works for most people",
			Content: models.LessonContent{
				Sections: []models.Section{
					{
						Type:    models.SectionIntro,
						Title:   "The 50/30/20 Budget Rule",
						Content: "This popular budgeting method divides your after-tax income into three categories.",
					},
					{
						Type:     models.SectionInteractive,
						Title:    "Budget Pie Chart",
						Activity: models.ActivityScenario,
						Scenario: &models.BudgetScenario{
							MonthlyIncome: 4000,
							Breakdown: []models.BudgetSlice{
								{Name: "Needs (50%)", Percentage: 50, Amount: 2000, Color: "#EF4444"},
								{Name: "Wants (30%)", Percentage: 30, Amount: 1200, Color: "#3B82F6"},
								{Name: "Savings (20%)", Percentage: 20, Amount: 800, Color: "#10B981"},
							},
						},
					},
					{
						Type:    models.SectionExplanation,
						Title:   "Breaking it Down",
						Content: "• 50% for needs (rent, groceries, utilities)\n• 30% for wants (entertainment, dining out)\n• 20% for savings and debt payment",
					},
				},
				Quiz: []models.QuizQuestion{
					{
						Question:    "If you earn $3,000 per month, how much should you save using the 50/30/20 rule?",
						Options:     []string{"$300", "$600", "$900", "$1,500"},
						Correct:     1,
						Explanation: "20% of $3,000 is $600 for savings and debt payment.",
					},
				},
			},
		},
	}
}

func seedBadges() []models.Badge {
	return []models.Badge{
		{ID: 1, Name: "First Steps", Description: "Complete your first lesson", Icon: "Trophy", Color: "#F59E0B",
			Criteria: models.BadgeCriteria{Type: models.CriteriaLessonsCompleted, Count: 1}},
		{ID: 2, Name: "Budget Master", Description: "Complete the Budgeting Basics path", Icon: "Star", Color: "#3B82F6",
			Criteria: models.BadgeCriteria{Type: models.CriteriaPathCompleted, PathID: 1}},
		{ID: 3, Name: "Streak Starter", Description: "Maintain a 3-day learning streak", Icon: "Flame", Color: "#EF4444",
			Criteria: models.BadgeCriteria{Type: models.CriteriaStreak, Count: 3}},
		{ID: 4, Name: "Dedicated Learner", Description: "Maintain a 7-day learning streak", Icon: "Flame", Color: "#DC2626",
			Criteria: models.BadgeCriteria{Type: models.CriteriaStreak, Count: 7}},
	}
}
