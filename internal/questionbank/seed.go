package questionbank

import "github.com/quizparty/quizparty-go/internal/model"

// SeedCategories is the built-in category set used when no bank file
// is configured. The mixed category is the bonus category.
func SeedCategories() []model.Category {
	return []model.Category{
		{ID: model.CategoryHistory, Name: "History"},
		{ID: model.CategoryGeography, Name: "Geography"},
		{ID: model.CategoryScience, Name: "Science"},
		{ID: model.CategorySport, Name: "Sport"},
		{ID: model.CategoryMusic, Name: "Music"},
		{ID: model.CategoryFilm, Name: "Film & TV"},
		{ID: model.CategoryNature, Name: "Nature"},
		{ID: model.CategoryFood, Name: "Food & Drink"},
		{ID: model.CategoryTechnology, Name: "Technology"},
		{ID: model.CategoryMixed, Name: "Mixed", IsBonus: true},
	}
}

// SeedQuestions is the built-in question set covering every question type
func SeedQuestions() []*model.Question {
	return []*model.Question{
		// History
		mc("h1", model.CategoryHistory, model.DifficultyEasy,
			"In which year did World War II end?",
			[]string{"1943", "1945", "1947", "1950"}, 1),
		mc("h2", model.CategoryHistory, model.DifficultyMedium,
			"Who was the first Roman emperor?",
			[]string{"Julius Caesar", "Augustus", "Nero", "Trajan"}, 1),
		tf("h3", model.CategoryHistory, model.DifficultyEasy,
			"The Great Wall of China was built in a single decade.", false),
		sortQ("h4", model.CategoryHistory, model.DifficultyMedium,
			"Order these events from earliest to latest.",
			[]string{"Fall of Rome", "Norman conquest", "French Revolution", "Moon landing"}),
		mc("h5", model.CategoryHistory, model.DifficultyHard,
			"Which treaty ended the Thirty Years' War?",
			[]string{"Treaty of Versailles", "Peace of Westphalia", "Treaty of Utrecht", "Congress of Vienna"}, 1),

		// Geography
		mc("g1", model.CategoryGeography, model.DifficultyEasy,
			"What is the capital of Australia?",
			[]string{"Sydney", "Melbourne", "Canberra", "Perth"}, 2),
		est("g2", model.CategoryGeography, model.DifficultyMedium,
			"How many countries are members of the United Nations?", 193, 10),
		tf("g3", model.CategoryGeography, model.DifficultyEasy,
			"The Nile is longer than the Amazon.", true),
		mc("g4", model.CategoryGeography, model.DifficultyHard,
			"Which country has the most time zones?",
			[]string{"Russia", "USA", "France", "China"}, 2),

		// Science
		mc("s1", model.CategoryScience, model.DifficultyEasy,
			"What is the chemical symbol for gold?",
			[]string{"Go", "Gd", "Au", "Ag"}, 2),
		est("s2", model.CategoryScience, model.DifficultyMedium,
			"What is the speed of light in km/s, to the nearest thousand?", 300000, 5000),
		tf("s3", model.CategoryScience, model.DifficultyMedium,
			"Sound travels faster in water than in air.", true),
		sortQ("s4", model.CategoryScience, model.DifficultyHard,
			"Order these planets by distance from the Sun.",
			[]string{"Mercury", "Earth", "Jupiter", "Neptune"}),

		// Sport
		mc("sp1", model.CategorySport, model.DifficultyEasy,
			"How many players are on a soccer team on the pitch?",
			[]string{"9", "10", "11", "12"}, 2),
		est("sp2", model.CategorySport, model.DifficultyMedium,
			"What is the length of a marathon in meters?", 42195, 500),
		tf("sp3", model.CategorySport, model.DifficultyEasy,
			"A basketball game has four quarters.", true),

		// Music
		mc("m1", model.CategoryMusic, model.DifficultyEasy,
			"Which band recorded the album Abbey Road?",
			[]string{"The Rolling Stones", "The Beatles", "The Who", "Pink Floyd"}, 1),
		mc("m2", model.CategoryMusic, model.DifficultyMedium,
			"How many strings does a standard violin have?",
			[]string{"4", "5", "6", "7"}, 0),

		// Film & TV
		mc("f1", model.CategoryFilm, model.DifficultyEasy,
			"Who directed Jurassic Park?",
			[]string{"James Cameron", "Steven Spielberg", "George Lucas", "Ridley Scott"}, 1),
		tf("f2", model.CategoryFilm, model.DifficultyMedium,
			"The Godfather won the Academy Award for Best Picture.", true),

		// Nature
		mc("n1", model.CategoryNature, model.DifficultyEasy,
			"What is the largest land animal?",
			[]string{"Rhino", "Hippo", "African elephant", "Giraffe"}, 2),
		est("n2", model.CategoryNature, model.DifficultyHard,
			"How many bones does an adult human have?", 206, 10),

		// Food & Drink
		mc("fd1", model.CategoryFood, model.DifficultyEasy,
			"Which country is the origin of sushi?",
			[]string{"China", "Korea", "Japan", "Thailand"}, 2),
		tf("fd2", model.CategoryFood, model.DifficultyMedium,
			"Cashews grow on trees attached to a fruit.", true),

		// Technology
		mc("t1", model.CategoryTechnology, model.DifficultyEasy,
			"What does CPU stand for?",
			[]string{"Central Processing Unit", "Computer Power Unit", "Core Program Utility", "Central Program Unit"}, 0),
		est("t2", model.CategoryTechnology, model.DifficultyMedium,
			"In what year was the first iPhone released?", 2007, 1),

		// Mixed (bonus category)
		mc("x1", model.CategoryMixed, model.DifficultyMedium,
			"Which of these is not a programming language?",
			[]string{"Rust", "Go", "Opal", "Granite"}, 3),
		sortQ("x2", model.CategoryMixed, model.DifficultyHard,
			"Order these inventions from oldest to newest.",
			[]string{"Printing press", "Steam engine", "Telephone", "Internet"}),
		tf("x3", model.CategoryMixed, model.DifficultyEasy,
			"An octopus has three hearts.", true),
	}
}

func mc(id model.QuestionID, cat model.CategoryID, diff model.Difficulty, prompt string, answers []string, correct int) *model.Question {
	return &model.Question{
		ID:           id,
		Category:     cat,
		Difficulty:   diff,
		Type:         model.QuestionMultipleChoice,
		Prompt:       prompt,
		Answers:      answers,
		CorrectIndex: correct,
	}
}

func tf(id model.QuestionID, cat model.CategoryID, diff model.Difficulty, prompt string, isTrue bool) *model.Question {
	correct := 1
	if isTrue {
		correct = 0
	}
	return &model.Question{
		ID:           id,
		Category:     cat,
		Difficulty:   diff,
		Type:         model.QuestionTrueFalse,
		Prompt:       prompt,
		Answers:      []string{"True", "False"},
		CorrectIndex: correct,
	}
}

func est(id model.QuestionID, cat model.CategoryID, diff model.Difficulty, prompt string, value, tolerance float64) *model.Question {
	return &model.Question{
		ID:           id,
		Category:     cat,
		Difficulty:   diff,
		Type:         model.QuestionEstimation,
		Prompt:       prompt,
		CorrectValue: value,
		Tolerance:    tolerance,
	}
}

func sortQ(id model.QuestionID, cat model.CategoryID, diff model.Difficulty, prompt string, order []string) *model.Question {
	return &model.Question{
		ID:           id,
		Category:     cat,
		Difficulty:   diff,
		Type:         model.QuestionSorting,
		Prompt:       prompt,
		Answers:      order,
		CorrectOrder: order,
	}
}
