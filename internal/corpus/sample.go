package corpus

import "embedlab/internal/models"

// SampleSentences returns the builtin demo corpus: categorized sentences
// used when no file is uploaded.
func SampleSentences() []models.Sentence {
	return []models.Sentence{
		{Category: "daily", Text: "The weather is really nice today."},
		{Category: "daily", Text: "What should we have for lunch?"},
		{Category: "daily", Text: "I am drinking a cup of coffee right now."},
		{Category: "daily", Text: "What a beautiful day!"},
		{Category: "tech", Text: "The performance of the latest AI models is astonishing."},
		{Category: "tech", Text: "Python is an easy programming language to learn."},
		{Category: "tech", Text: "How should we fix this bug?"},
		{Category: "tech", Text: "The new API is much faster."},
		{Category: "business", Text: "I am looking forward to next quarter's earnings report."},
		{Category: "business", Text: "We need a new marketing strategy."},
		{Category: "business", Text: "The contract review has been completed."},
		{Category: "business", Text: "We need to increase our market share."},
		{Category: "science", Text: "The mysteries of the universe are endless."},
		{Category: "science", Text: "A new paper was published in Nature."},
		{Category: "science", Text: "Quantum mechanics is a fascinating field."},
		{Category: "science", Text: "Photosynthesis is a complex process."},
		{Category: "sports", Text: "The striker scored another goal last night."},
		{Category: "sports", Text: "This World Cup has been really exciting."},
		{Category: "sports", Text: "I enjoy watching baseball games."},
		{Category: "sports", Text: "The crowd went wild after the touchdown."},
		{Category: "art", Text: "This painting is truly beautiful."},
		{Category: "art", Text: "I enjoy listening to classical music."},
		{Category: "art", Text: "Shakespeare's plays transcend their era."},
		{Category: "art", Text: "Her voice is simply mesmerizing."},
		{Category: "history", Text: "The royal annals are part of the UNESCO Memory of the World."},
		{Category: "history", Text: "The history of the Roman Empire is fascinating."},
		{Category: "history", Text: "The Second World War left deep scars on humanity."},
		{Category: "history", Text: "The Renaissance was a pivotal period in history."},
		{Category: "health", Text: "Regular exercise is good for your health."},
		{Category: "health", Text: "Getting enough sleep is important."},
		{Category: "health", Text: "Vitamin C helps strengthen the immune system."},
		{Category: "health", Text: "A balanced diet is key to good health."},
	}
}
