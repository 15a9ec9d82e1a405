package corpus

import "github.com/hyperjump/kotae/internal/models"

var seedRecords = []models.Record{
	{Question: "hello", Answer: "Hello! How can I assist you today?", Category: "greeting"},
	{Question: "hi", Answer: "Hi there! What can I help you with?", Category: "greeting"},
	{Question: "how are you", Answer: "I'm doing great, thank you! How can I assist you?", Category: "greeting"},
	{Question: "what is your name", Answer: "I'm an AI chatbot designed to help with your questions.", Category: "about"},
	{Question: "what can you do", Answer: "I can answer questions, provide information, help with calculations, and more!", Category: "about"},
	{Question: "tell me a joke", Answer: "Why don't scientists trust atoms? Because they make up everything!", Category: "fun"},
	{Question: "what is python", Answer: "Python is a high-level programming language known for its simplicity and readability.", Category: "programming"},
	{Question: "how to learn coding", Answer: "Start with basic programming concepts, practice regularly, and build small projects.", Category: "advice"},
	{Question: "what is machine learning", Answer: "Machine learning is a subset of AI that enables computers to learn from data.", Category: "technology"},
	{Question: "what is artificial intelligence", Answer: "AI is the simulation of human intelligence in machines.", Category: "technology"},
	{Question: "good morning", Answer: "Good morning! How are you doing today?", Category: "greeting"},
	{Question: "good afternoon", Answer: "Good afternoon! How can I help you?", Category: "greeting"},
	{Question: "good evening", Answer: "Good evening! What would you like to know?", Category: "greeting"},
	{Question: "who created you", Answer: "I was created by a developer to assist with various tasks.", Category: "about"},
	{Question: "what time is it", Answer: "I cannot access real-time information, but you can check your device clock.", Category: "information"},
	{Question: "how to make coffee", Answer: "Boil water, add coffee grounds, pour hot water, and let it brew.", Category: "cooking"},
	{Question: "what is photosynthesis", Answer: "Photosynthesis is how plants convert sunlight into energy.", Category: "science"},
	{Question: "benefits of exercise", Answer: "Exercise improves health, boosts mood, and increases energy levels.", Category: "health"},
	{Question: "book recommendations", Answer: "I recommend \"Atomic Habits\", \"The Alchemist\", and \"Sapiens\".", Category: "entertainment"},
	{Question: "how to play guitar", Answer: "Start with basic chords, practice regularly, and learn simple songs.", Category: "hobbies"},
}

// Seed returns the built-in records used when no stored corpus can be read.
func Seed() *Corpus {
	return &Corpus{records: append([]models.Record(nil), seedRecords...)}
}
