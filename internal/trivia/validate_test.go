package trivia

import "testing"

func TestNewQuestion_Unescapes(t *testing.T) {
	q, err := NewQuestion("Who wrote &#039;Hamlet&#039;?", "Shakespeare", []string{"Marlowe &amp; Kyd", "Jonson"}, "Art", DifficultyEasy, TypeMultiple)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Prompt != "Who wrote 'Hamlet'?" {
		t.Errorf("Prompt = %q", q.Prompt)
	}
	if q.Distractors[0] != "Marlowe & Kyd" {
		t.Errorf("Distractors[0] = %q", q.Distractors[0])
	}
}

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{"valid multiple", Question{Prompt: "Q", CorrectAnswer: "A", Distractors: []string{"B", "C", "D"}, Type: TypeMultiple}, false},
		{"valid boolean", Question{Prompt: "Q", CorrectAnswer: "True", Distractors: []string{"False"}, Type: TypeBoolean}, false},
		{"empty prompt", Question{CorrectAnswer: "A", Distractors: []string{"B"}}, true},
		{"empty answer", Question{Prompt: "Q", Distractors: []string{"B"}}, true},
		{"no distractors", Question{Prompt: "Q", CorrectAnswer: "A"}, true},
		{"answer among distractors", Question{Prompt: "Q", CorrectAnswer: "A", Distractors: []string{"B", "A"}}, true},
		{"duplicate distractors", Question{Prompt: "Q", CorrectAnswer: "A", Distractors: []string{"B", "B"}}, true},
		{"empty distractor", Question{Prompt: "Q", CorrectAnswer: "A", Distractors: []string{""}}, true},
		{"boolean with three", Question{Prompt: "Q", CorrectAnswer: "True", Distractors: []string{"False", "Maybe"}, Type: TypeBoolean}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidEnums(t *testing.T) {
	for _, s := range []string{"easy", "medium", "hard"} {
		if !ValidDifficulty(s) {
			t.Errorf("ValidDifficulty(%q) = false", s)
		}
	}
	if ValidDifficulty("Hard") {
		t.Error("difficulty match should be case-sensitive")
	}
	if !ValidQuestionType("boolean") || ValidQuestionType("truefalse") {
		t.Error("ValidQuestionType mismatch")
	}
}
