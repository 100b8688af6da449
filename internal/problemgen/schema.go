package problemgen

import "github.com/abhisek/adaptiquiz/internal/llm"

// QuestionSchema is the structured output requested from the model.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single arithmetic question for a young child, with its answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{
				"type":        "string",
				"description": "The question shown to the child, in plain ASCII text",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The correct answer as a number, e.g. \"12\"",
			},
			"answer_type": map[string]any{
				"type":        "string",
				"enum":        []any{"integer", "decimal", "fraction"},
				"description": "The numeric type of the answer",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "One or two short sentences a child can follow",
			},
		},
		"required":             []any{"question_text", "answer", "answer_type", "explanation"},
		"additionalProperties": false,
	},
}
