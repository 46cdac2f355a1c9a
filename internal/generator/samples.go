package generator

func gq(q, a, b, c, d, correct, hint string) GeneratedQuestion {
	return GeneratedQuestion{Question: q, OptionA: a, OptionB: b, OptionC: c, OptionD: d, CorrectAnswer: correct, Hint: hint, WorksheetNo: 1}
}

var sampleMath = []GeneratedQuestion{
	gq("What is 5 + 3?", "6", "7", "8", "9", "C", "Count forward from 5"),
	gq("What is 12 - 4?", "6", "7", "8", "9", "C", "Count backward from 12"),
	gq("What is 3 × 4?", "10", "11", "12", "14", "C", "Add 3 four times"),
	gq("What is 15 ÷ 3?", "3", "4", "5", "6", "C", "How many times does 3 go into 15?"),
	gq("What number comes after 99?", "98", "100", "101", "109", "B", "Think about what comes after ninety-nine"),
	gq("How many sides does a triangle have?", "2", "3", "4", "5", "B", "The name gives you a clue!"),
	gq("What is 7 × 2?", "12", "13", "14", "15", "C", "Double 7"),
	gq("If you have 20 apples and give away 8, how many do you have left?", "10", "11", "12", "13", "C", "20 minus 8"),
	gq("What is half of 16?", "6", "7", "8", "9", "C", "Divide 16 by 2"),
	gq("What is 9 + 6?", "13", "14", "15", "16", "C", "Make 10 first, then add the rest"),
}

var sampleEnglish = []GeneratedQuestion{
	gq("Which word is a noun?", "Run", "Happy", "Cat", "Quickly", "C", "A noun is a person, place, or thing"),
	gq(`What is the opposite of "hot"?`, "Warm", "Cold", "Cool", "Fire", "B", "Think about winter temperature"),
	gq("Which word is spelled correctly?", "Beautful", "Beautiful", "Beutiful", "Beautifl", "B", "Sound it out: beau-ti-ful"),
	gq(`What is the plural of "child"?`, "Childs", "Childes", "Children", "Childrens", "C", "This is an irregular plural"),
	gq("Which word is a verb?", "Book", "Jump", "Happy", "Blue", "B", "A verb is an action word"),
	gq("What punctuation goes at the end of a question?", "Period (.)", "Comma (,)", "Question mark (?)", "Exclamation (!)", "C", "Look at the end of this sentence!"),
	gq(`Which word means the same as "big"?`, "Small", "Tiny", "Large", "Little", "C", "Think of another word for big"),
	gq(`Complete the sentence: "The dog ___ barking."`, "is", "are", "am", "be", "A", "Dog is singular (one)"),
	gq("Which word is an adjective?", "Run", "Quickly", "Tall", "House", "C", "Adjectives describe nouns"),
	gq(`What is the past tense of "go"?`, "Goes", "Going", "Went", "Gone", "C", "Yesterday I ___ to school"),
}

// SampleQuestions is the offline fallback: up to NumberOfQuestions of the
// built-in set for the subject.
func SampleQuestions(cfg Config) []GeneratedQuestion {
	src := sampleEnglish
	if cfg.Subject == SubjectMath {
		src = sampleMath
	}
	n := min(max(cfg.NumberOfQuestions, 0), len(src))
	return append([]GeneratedQuestion(nil), src[:n]...)
}
