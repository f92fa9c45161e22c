package seedmodels

// SeedQuiz defines one quiz in the seed file. Questions holds raw quiz text
// in the same format the import endpoints accept.
type SeedQuiz struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Questions string `yaml:"questions"`
}

// SeedFile is the top level of the seed file.
type SeedFile struct {
	Quizzes []SeedQuiz `yaml:"quizzes"`
}
