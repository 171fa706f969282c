package main

import (
	"courseforge/config"
	"courseforge/database"
	"courseforge/models"
	"log"
	"os"

	"github.com/google/uuid"
)

// Demo data for local development. Run with a DEMO_OWNER_ID env var to seed
// courses for a specific user, otherwise a placeholder owner is used.

type seedTopic struct {
	Title       string
	Description string
	SearchQuery string
	Completed   bool
}

type seedCourse struct {
	Title       string
	Description string
	Difficulty  string
	Progress    int
	Thumbnail   string
	Topics      []seedTopic
}

var seedCourses = []seedCourse{
	{
		Title:       "Introduction to AI",
		Description: "Learn the fundamentals of Artificial Intelligence",
		Difficulty:  models.DifficultyBeginner,
		Progress:    67,
		Thumbnail:   "https://images.unsplash.com/photo-1677442136019-21780ecad995",
		Topics: []seedTopic{
			{Title: "What is AI?", Description: "Introduction to artificial intelligence concepts", SearchQuery: "artificial intelligence introduction tutorial", Completed: true},
			{Title: "AI Applications", Description: "Real-world applications of AI", SearchQuery: "ai real world applications", Completed: true},
			{Title: "Neural Networks", Description: "How neural networks learn from data", SearchQuery: "neural networks explained beginner"},
		},
	},
	{
		Title:       "Machine Learning Basics",
		Description: "Understanding the core concepts of Machine Learning",
		Difficulty:  models.DifficultyIntermediate,
		Progress:    50,
		Thumbnail:   "https://images.unsplash.com/photo-1677442136019-21780ecad995",
		Topics: []seedTopic{
			{Title: "Types of Machine Learning", Description: "Overview of different ML approaches", SearchQuery: "supervised vs unsupervised learning", Completed: true},
			{Title: "Model Training", Description: "How models are trained and evaluated", SearchQuery: "machine learning model training tutorial"},
		},
	},
	{
		Title:       "Natural Language Processing",
		Description: "Deep dive into NLP techniques",
		Difficulty:  models.DifficultyAdvanced,
		Progress:    0,
		Topics: []seedTopic{
			{Title: "Text Processing", Description: "Tokenization, stemming and text normalization", SearchQuery: "nlp text preprocessing tutorial"},
			{Title: "Sentiment Analysis", Description: "Classifying the sentiment of text", SearchQuery: "sentiment analysis guide"},
			{Title: "Language Models", Description: "From n-grams to transformer models", SearchQuery: "language models explained"},
		},
	},
}

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	ownerID := os.Getenv("DEMO_OWNER_ID")
	if ownerID == "" {
		ownerID = "demo-user"
	}
	log.Printf("Seeding courses for owner %s", ownerID)

	inserted := 0
	skipped := 0

	for _, seed := range seedCourses {
		// Skip courses that already exist for this owner
		var existing models.Course
		result := database.Database.Db.
			Where("title = ? AND owner_id = ? AND is_deleted = ?", seed.Title, ownerID, false).
			First(&existing)
		if result.Error == nil {
			skipped++
			continue
		}

		course := models.Course{
			Title:        seed.Title,
			Description:  seed.Description,
			Difficulty:   seed.Difficulty,
			OwnerID:      ownerID,
			Progress:     seed.Progress,
			ThumbnailURL: seed.Thumbnail,
			Revision:     1,
		}
		for i, t := range seed.Topics {
			course.Topics = append(course.Topics, models.Topic{
				UID:         uuid.NewString(),
				Position:    i,
				Title:       t.Title,
				Description: t.Description,
				SearchQuery: t.SearchQuery,
				Completed:   t.Completed,
			})
		}

		if err := database.Database.Db.Create(&course).Error; err != nil {
			log.Printf("Error inserting course %q: %v", seed.Title, err)
			continue
		}
		inserted++
	}

	log.Printf("=== Seed Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Skipped: %d", skipped)
}
