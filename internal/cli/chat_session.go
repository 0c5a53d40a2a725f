package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/agrichat/internal/catalog"
	"github.com/at-ishikawa/agrichat/internal/inference"
	"github.com/at-ishikawa/agrichat/internal/typewriter"
)

// State is a step of the chat session.
type State int

const (
	StateSelectingCategory State = iota
	StateAskingQuestion
	StateExit
)

func (s State) String() string {
	switch s {
	case StateSelectingCategory:
		return "SelectingCategory"
	case StateAskingQuestion:
		return "AskingQuestion"
	case StateExit:
		return "Exit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// BackCommand returns from the question prompt to the category menu.
const BackCommand = "back"

const (
	doubleRule = "=================================================="
	singleRule = "--------------------------------------------------"
)

// ChatSession walks the user through category selection and questions.
type ChatSession struct {
	*InteractiveCLI
	catalog  *catalog.Catalog
	client   inference.Client
	renderer *typewriter.Renderer

	state    State
	category *catalog.Category
	showMenu bool
}

func NewChatSession(
	c *catalog.Catalog,
	client inference.Client,
	renderer *typewriter.Renderer,
	stdin io.Reader,
	stdout io.Writer,
) *ChatSession {
	return &ChatSession{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		catalog:        c,
		client:         client,
		renderer:       renderer,
		state:          StateSelectingCategory,
		showMenu:       true,
	}
}

func (s *ChatSession) State() State {
	return s.state
}

// Category returns the category bound while asking questions.
func (s *ChatSession) Category() (catalog.Category, bool) {
	if s.category == nil {
		return catalog.Category{}, false
	}
	return *s.category, true
}

// Session handles one line of input for the current state.
func (s *ChatSession) Session(ctx context.Context) error {
	switch s.state {
	case StateSelectingCategory:
		if s.showMenu {
			s.displayCategoryMenu()
			s.showMenu = false
		}
		s.printf("请输入类别编号（如 1、2...0 或 q）：")
	case StateAskingQuestion:
		s.displayQuestionPrompt()
	case StateExit:
		return errEnd
	}

	line, err := s.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.exit()
			return errEnd
		}
		return fmt.Errorf("stdinReader.ReadString() > %w", err)
	}

	var next State
	switch s.state {
	case StateSelectingCategory:
		next = s.HandleCategoryInput(line)
	case StateAskingQuestion:
		next = s.HandleQuestionInput(ctx, line)
	}
	if next == StateExit {
		return errEnd
	}
	return nil
}

// HandleCategoryInput applies a line typed at the category menu.
func (s *ChatSession) HandleCategoryInput(input string) State {
	if s.state != StateSelectingCategory {
		return s.state
	}
	input = strings.TrimSpace(input)
	if catalog.IsQuit(input) {
		s.exit()
		return s.state
	}

	category, ok := s.catalog.Lookup(input)
	if !ok {
		_, _ = s.red.Fprintln(s.stdoutWriter, "❌ 无效输入，请输入 0-9 或 q。")
		return s.state
	}

	slog.Default().Debug("category selected", slog.String("key", category.Key))
	s.category = &category
	s.state = StateAskingQuestion
	return s.state
}

// HandleQuestionInput applies a line typed at the question prompt.
func (s *ChatSession) HandleQuestionInput(ctx context.Context, input string) State {
	if s.state != StateAskingQuestion || s.category == nil {
		return s.state
	}
	question := strings.TrimSpace(input)
	if strings.EqualFold(question, BackCommand) {
		s.category = nil
		s.state = StateSelectingCategory
		s.showMenu = true
		return s.state
	}
	if err := ValidateQuestion(question); err != nil {
		_, _ = s.yellow.Fprintln(s.stdoutWriter, "⚠️  问题不能为空，请重新输入。")
		return s.state
	}

	s.println()
	s.println("🧠 农博士正在思考中，请稍候...")
	answer, err := s.client.Complete(ctx, BuildPrompt(s.category.Description, question))
	if err != nil {
		slog.Default().Debug("completion failed", slog.Any("error", err))
		answer = inference.ErrorMessage(err)
	}

	s.println()
	_, _ = s.bold.Fprintln(s.stdoutWriter, "💬 智慧农博士的回答：")
	s.renderer.Render(answer)

	s.println()
	s.println(singleRule)
	s.printf("您可以继续提问，或输入 '%s' 返回选择其他农业类别。\n", BackCommand)
	return s.state
}

func (s *ChatSession) displayCategoryMenu() {
	s.println()
	s.println(doubleRule)
	_, _ = s.bold.Fprintln(s.stdoutWriter, "🌱 欢迎使用【智慧农博士】农业聊天助手 🌾")
	s.println(doubleRule)
	s.println("请选择您要咨询的农业类别：")
	for _, category := range s.catalog.Categories() {
		s.printf("  [%s] %s\n", category.Key, category.Description)
	}
	s.printf("  [%s] 退出程序\n", catalog.QuitKey)
	s.println(singleRule)
}

func (s *ChatSession) displayQuestionPrompt() {
	s.println()
	_, _ = s.green.Fprintf(s.stdoutWriter, "✅ 已选择：%s\n", s.italic.Sprint(s.category.Description))
	s.printf("请输入您的农业问题（输入 '%s' 返回类别选择）：\n", BackCommand)
	s.printf("问题：")
}

func (s *ChatSession) exit() {
	s.category = nil
	s.state = StateExit
	s.println()
	s.println("👋 感谢使用智慧农博士，祝您丰收！")
}
