package triviagen

import (
	"encoding/json"
	"math/rand/v2"

	"github.com/abhisek/timetick/internal/llm"
	"github.com/abhisek/timetick/internal/trivia"
)

// OfflineMock returns a mock LLM provider that answers every generation
// request with a shuffled batch from a small built-in bank. It lets the
// game run with the "mock" provider and no network.
func OfflineMock() *llm.MockProvider {
	m := llm.NewMockProvider()
	m.Fallback = func(req llm.Request) llm.MockResponse {
		bank := multipleBank
		if req.Schema != nil && req.Schema.Name == batchSchema(trivia.TypeBoolean).Name {
			bank = booleanBank
		}
		shuffled := make([]generated, len(bank))
		copy(shuffled, bank)
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		raw, err := json.Marshal(batch{Questions: shuffled})
		if err != nil {
			return llm.MockResponse{Err: err}
		}
		return llm.MockResponse{Content: raw}
	}
	return m
}

var multipleBank = []generated{
	{"What is the capital of Australia?", "Canberra", []string{"Sydney", "Melbourne", "Perth"}},
	{"Which planet is known as the Red Planet?", "Mars", []string{"Venus", "Jupiter", "Mercury"}},
	{"Who painted the Mona Lisa?", "Leonardo da Vinci", []string{"Michelangelo", "Raphael", "Donatello"}},
	{"What is the chemical symbol for gold?", "Au", []string{"Ag", "Gd", "Go"}},
	{"How many sides does a hexagon have?", "6", []string{"5", "7", "8"}},
	{"Which ocean is the largest?", "Pacific", []string{"Atlantic", "Indian", "Arctic"}},
	{"What is the hardest natural substance?", "Diamond", []string{"Quartz", "Granite", "Topaz"}},
	{"Which language has the most native speakers?", "Mandarin Chinese", []string{"English", "Spanish", "Hindi"}},
	{"In which country are the ancient pyramids of Giza?", "Egypt", []string{"Mexico", "Peru", "Sudan"}},
	{"What gas do plants absorb from the air?", "Carbon dioxide", []string{"Oxygen", "Nitrogen", "Helium"}},
	{"Who wrote 'Romeo and Juliet'?", "William Shakespeare", []string{"Charles Dickens", "Jane Austen", "Mark Twain"}},
	{"What is the longest river in South America?", "Amazon", []string{"Orinoco", "Parana", "Magdalena"}},
	{"How many bones are in the adult human body?", "206", []string{"201", "212", "198"}},
	{"What is the smallest prime number?", "2", []string{"1", "3", "5"}},
	{"Which animal is the largest mammal?", "Blue whale", []string{"African elephant", "Giraffe", "Orca"}},
	{"Which element has atomic number 1?", "Hydrogen", []string{"Helium", "Oxygen", "Lithium"}},
	{"What currency is used in Japan?", "Yen", []string{"Won", "Yuan", "Ringgit"}},
	{"Which instrument has 88 keys?", "Piano", []string{"Organ", "Harpsichord", "Accordion"}},
	{"What is the freezing point of water in Fahrenheit?", "32", []string{"0", "100", "212"}},
	{"Which continent is the Sahara Desert on?", "Africa", []string{"Asia", "Australia", "South America"}},
}

var booleanBank = []generated{
	{"The Great Wall of China is visible from the Moon with the naked eye.", "False", []string{"True"}},
	{"Bats are mammals.", "True", []string{"False"}},
	{"Mount Everest is the tallest mountain above sea level.", "True", []string{"False"}},
	{"Lightning never strikes the same place twice.", "False", []string{"True"}},
	{"Sound travels faster in water than in air.", "True", []string{"False"}},
	{"The Atlantic is the largest ocean on Earth.", "False", []string{"True"}},
	{"A group of crows is called a murder.", "True", []string{"False"}},
	{"Humans share no DNA with bananas.", "False", []string{"True"}},
	{"Venus is the hottest planet in the Solar System.", "True", []string{"False"}},
	{"Goldfish have a memory span of only three seconds.", "False", []string{"True"}},
	{"The human heart has four chambers.", "True", []string{"False"}},
	{"Tomatoes are botanically classified as fruit.", "True", []string{"False"}},
	{"The chemical symbol for iron is Ir.", "False", []string{"True"}},
	{"Octopuses have three hearts.", "True", []string{"False"}},
	{"Australia is wider than the Moon.", "True", []string{"False"}},
	{"Glass is a liquid at room temperature.", "False", []string{"True"}},
	{"The Eiffel Tower is in Rome.", "False", []string{"True"}},
	{"Penguins live naturally at the North Pole.", "False", []string{"True"}},
	{"Water boils at 100 degrees Celsius at sea level.", "True", []string{"False"}},
	{"Spiders are insects.", "False", []string{"True"}},
}
