package cli

import (
	"fmt"
	"strings"
)

const questionLabel = "用户问题："

// rolePreamble sets the expert persona for the selected category.
func rolePreamble(categoryDescription string) string {
	return fmt.Sprintf("你是一位专业的农业专家，专注于【%s】领域。", categoryDescription) +
		"请用中文、简洁、准确、实用的方式回答以下农民提出的问题。" +
		"避免使用专业术语过多，尽量通俗易懂。" +
		"你是一位精通古代农业和诗词的AI,请在回答专业问题的同时,恰当地引用相关的古代诗词来增加文采。"
}

// BuildPrompt puts the role preamble in front of the raw question.
func BuildPrompt(categoryDescription, question string) string {
	return rolePreamble(categoryDescription) + "\n\n" + questionLabel + question
}

// ValidateQuestion checks if the question input is valid
func ValidateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return ErrEmptyQuestion
	}
	return nil
}

// Errors for validation
var (
	ErrEmptyQuestion = &ValidationError{Message: "Question cannot be empty"}
)

// ValidationError represents an input validation error
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
