package ai

import "github.com/sashabaranov/go-openai/jsonschema"

// ResponseSchema - именованная JSON-схема для структурированного вывода.
type ResponseSchema struct {
	Name       string
	Definition jsonschema.Definition
}

var actionSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"text":      {Type: jsonschema.String, Description: "What the support technician does"},
		"isCorrect": {Type: jsonschema.Boolean},
		"feedback":  {Type: jsonschema.String, Description: "Explanation shown after the action is chosen"},
	},
	Required:             []string{"text", "isCorrect", "feedback"},
	AdditionalProperties: false,
}

// ScenarioSchema - схема ответа генератора сценариев.
var ScenarioSchema = &ResponseSchema{
	Name: "troubleshooting_scenario",
	Definition: jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"title":            {Type: jsonschema.String},
			"initialSituation": {Type: jsonschema.String},
			"steps": {
				Type:        jsonschema.Array,
				Description: "3 to 5 steps",
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"title":       {Type: jsonschema.String},
						"description": {Type: jsonschema.String},
						"hint":        {Type: jsonschema.String},
						"actions": {
							Type:        jsonschema.Array,
							Description: "Exactly 3 actions, exactly one correct",
							Items:       &actionSchema,
						},
					},
					Required:             []string{"title", "description", "hint", "actions"},
					AdditionalProperties: false,
				},
			},
			"finalSolution": {Type: jsonschema.String},
		},
		Required:             []string{"title", "initialSituation", "steps", "finalSolution"},
		AdditionalProperties: false,
	},
}

// QuizSchema - схема ответа генератора квизов.
var QuizSchema = &ResponseSchema{
	Name: "troubleshooting_quiz",
	Definition: jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"title":       {Type: jsonschema.String},
			"description": {Type: jsonschema.String},
			"questions": {
				Type:        jsonschema.Array,
				Description: "3 to 10 questions",
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"text":         {Type: jsonschema.String},
						"options":      {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
						"correctIndex": {Type: jsonschema.Integer},
						"explanation":  {Type: jsonschema.String},
					},
					Required:             []string{"text", "options", "correctIndex", "explanation"},
					AdditionalProperties: false,
				},
			},
		},
		Required:             []string{"title", "description", "questions"},
		AdditionalProperties: false,
	},
}
