package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"mealmatcher/internal/models"
)

// ParseError kinds. The raw model text rides along so clients can inspect
// what the model actually said.
const (
	ParseErrNoArray = "No valid JSON array found"
	ParseErrNotList = "Extracted JSON is not a list"
	ParseErrBadJSON = "Failed to parse response as JSON"
)

// ParseError is the Err side of the generation result: the model answered,
// but its reply could not be turned into recipes.
type ParseError struct {
	Kind string
	Raw  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind
}

func (e *ParseError) Unwrap() error { return e.Err }

// generateTimeout bounds the whole generation including retries; each
// individual attempt is additionally capped by the model client's own
// timeout.
const generateTimeout = 2 * time.Minute

// RecommendService turns ingredient lists into recipe suggestions via the
// generative model.
type RecommendService struct {
	model ModelClient
}

func NewRecommendService(model ModelClient) *RecommendService {
	return &RecommendService{model: model}
}

var _ Recommender = (*RecommendService)(nil)

// Generate prompts the model and parses its reply. A transport or timeout
// failure returns the underlying error; a reply that cannot be parsed
// returns a *ParseError carrying the raw text.
func (s *RecommendService) Generate(ctx context.Context, ingredients, dietaryPrefs []string) ([]models.GeneratedRecipe, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	text, err := s.model.GenerateContent(ctx, buildPrompt(ingredients, dietaryPrefs))
	if err != nil {
		return nil, fmt.Errorf("generate recipes: %w", err)
	}
	return parseRecipes(text)
}

// buildPrompt asks for exactly three recipes as a strict JSON array.
func buildPrompt(ingredients, dietaryPrefs []string) string {
	var b strings.Builder
	b.WriteString("Generate exactly 3 recipes using some of the following ingredients: ")
	b.WriteString(strings.Join(ingredients, ", "))
	b.WriteString(". Each recipe must include a source. ")
	b.WriteString("Return the response as a JSON array containing three objects, each with the following fields: ")
	b.WriteString("title, instructions, ingredients, source, prepTime, cookTime, and difficulty. ")
	b.WriteString(`prepTime and cookTime should be strings in the format "X minutes". `)
	b.WriteString(`The instructions field must be a list of strings (e.g., ["Step 1: do this", "Step 2: do that"]). `)
	b.WriteString("The difficulty field must be one of the following: Easy, Medium, or Hard. ")
	b.WriteString(`The ingredients field must be a list of strings (e.g., ["1 cup flour", "1/2 cup sugar"]). `)
	b.WriteString("Ensure the recipes follow these dietary preferences: ")
	b.WriteString(strings.Join(dietaryPrefs, ", "))
	b.WriteString(". Do not add extra formatting or explanations—only return valid JSON.")
	return b.String()
}

// jsonArrayRE grabs the first bracketed array in the reply, across newlines.
// Models tend to wrap the JSON in prose or code fences despite instructions.
var jsonArrayRE = regexp.MustCompile(`(?s)\[.*\]`)

// rawRecipe tolerates the model returning instructions as either a list or
// a single newline-separated string.
type rawRecipe struct {
	Title        string          `json:"title"`
	Ingredients  []string        `json:"ingredients"`
	Instructions json.RawMessage `json:"instructions"`
	Source       string          `json:"source"`
	PrepTime     string          `json:"prepTime"`
	CookTime     string          `json:"cookTime"`
	Difficulty   string          `json:"difficulty"`
}

func parseRecipes(text string) ([]models.GeneratedRecipe, error) {
	cleaned := jsonArrayRE.FindString(text)
	if cleaned == "" {
		return nil, &ParseError{Kind: ParseErrNoArray, Raw: text}
	}

	var raws []rawRecipe
	if err := json.Unmarshal([]byte(cleaned), &raws); err != nil {
		// Distinguish "valid JSON but not a list" from plain garbage.
		var probe any
		if json.Unmarshal([]byte(cleaned), &probe) == nil {
			return nil, &ParseError{Kind: ParseErrNotList, Raw: cleaned, Err: err}
		}
		return nil, &ParseError{Kind: ParseErrBadJSON, Raw: cleaned, Err: err}
	}

	out := make([]models.GeneratedRecipe, 0, len(raws))
	for _, rr := range raws {
		out = append(out, models.GeneratedRecipe{
			Title:        rr.Title,
			Ingredients:  rr.Ingredients,
			Instructions: normalizeInstructions(rr.Instructions),
			Source:       rr.Source,
			PrepTime:     rr.PrepTime,
			CookTime:     rr.CookTime,
			Difficulty:   rr.Difficulty,
		})
	}
	return out, nil
}

// normalizeInstructions bridges model non-determinism: a plain string is
// split into steps on newline boundaries.
func normalizeInstructions(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.Split(single, "\n")
	}
	return nil
}
